package build

// Set at link time:
//
//	go build -ldflags "-X github.com/rohmanhakim/atcoder-cli/internal/build.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
}

func Current() Info {
	return Info{Version: Version, Commit: Commit, BuildTime: BuildTime}
}

// FullVersion returns "Version+Commit", e.g. "1.0.0+abc123".
func FullVersion() string {
	return Version + "+" + Commit
}

// UserAgent is the request header value sent when none is configured.
func UserAgent() string {
	return "atcoder-cli/" + Version
}
