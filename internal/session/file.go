package session

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rohmanhakim/atcoder-cli/internal/metadata"
	"github.com/rohmanhakim/atcoder-cli/pkg/failure"
	"github.com/rohmanhakim/atcoder-cli/pkg/fileutil"
)

/*
Store persists a Session snapshot to one file.
- A missing file loads as an empty session
- The containing directory is created before the first write
- Writes go through a temp file and rename, so a crash never leaves half a snapshot
*/
type Store struct {
	path         string
	metadataSink metadata.MetadataSink
}

func NewStore(path string, metadataSink metadata.MetadataSink) Store {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	return Store{
		path:         path,
		metadataSink: metadataSink,
	}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Load() (*Session, failure.ClassifiedError) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, s.record("Store.Load", &SessionError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseReadFailure,
			Path:      s.path,
		})
	}
	sess, err := FromJSON(data)
	if err != nil {
		var sessErr *SessionError
		if !errors.As(err, &sessErr) {
			sessErr = &SessionError{Message: err.Error(), Cause: ErrCauseCorruptSnapshot}
		}
		sessErr.Path = s.path
		return nil, s.record("Store.Load", sessErr)
	}
	return sess, nil
}

func (s *Store) Save(sess *Session) failure.ClassifiedError {
	data, err := sess.MarshalJSON()
	if err != nil {
		return s.record("Store.Save", &SessionError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteFailure,
			Path:      s.path,
		})
	}

	dir := filepath.Dir(s.path)
	if ferr := fileutil.EnsureDir(dir); ferr != nil {
		return s.record("Store.Save", &SessionError{
			Message:   ferr.Error(),
			Retryable: false,
			Cause:     ErrCausePathError,
			Path:      dir,
		})
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return s.record("Store.Save", writeError(err, dir))
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return s.record("Store.Save", writeError(err, tmpName))
	}
	if err := tmp.Close(); err != nil {
		return s.record("Store.Save", writeError(err, tmpName))
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return s.record("Store.Save", writeError(err, tmpName))
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return s.record("Store.Save", writeError(err, s.path))
	}
	return nil
}

func writeError(err error, path string) *SessionError {
	if errors.Is(err, syscall.ENOSPC) {
		return &SessionError{
			Message:   err.Error(),
			Retryable: true,
			Cause:     ErrCauseDiskFull,
			Path:      path,
		}
	}
	return &SessionError{
		Message:   err.Error(),
		Retryable: false,
		Cause:     ErrCauseWriteFailure,
		Path:      path,
	}
}

func (s *Store) record(action string, err *SessionError) *SessionError {
	s.metadataSink.RecordError(
		time.Now(),
		"session",
		action,
		mapSessionErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrPath, err.Path),
		},
	)
	return err
}
