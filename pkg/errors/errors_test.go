package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrProfileNotFound, "profile missing")

	assert.Equal(t, ErrProfileNotFound, err.Code)
	assert.Equal(t, "profile missing", err.Message)
	assert.Equal(t, "[PROFILE_NOT_FOUND] profile missing", err.Error())
	assert.Nil(t, err.Wrapped)
}

func TestNewf(t *testing.T) {
	err := Newf(ErrSourceMissing, "source does not exist: %s", "/store/zshrc")

	assert.Equal(t, ErrSourceMissing, err.Code)
	assert.Equal(t, "source does not exist: /store/zshrc", err.Message)
}

func TestWrap(t *testing.T) {
	inner := fmt.Errorf("permission denied")
	err := Wrap(inner, ErrFileCopy, "failed to copy file")

	require.NotNil(t, err)
	assert.Equal(t, ErrFileCopy, err.Code)
	assert.Equal(t, "[FILE_COPY] failed to copy file: permission denied", err.Error())
	assert.Equal(t, inner, errors.Unwrap(err))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrFileCopy, "should be nil"))
	assert.Nil(t, Wrapf(nil, ErrFileCopy, "should be %s", "nil"))
}

func TestErrorsIs(t *testing.T) {
	err := New(ErrTargetExists, "target exists")
	wrapped := fmt.Errorf("deploy: %w", err)

	assert.True(t, errors.Is(wrapped, New(ErrTargetExists, "different message")))
	assert.False(t, errors.Is(wrapped, New(ErrSourceMissing, "target exists")))
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{
			name: "matching code",
			err:  New(ErrProfileParse, "bad yaml"),
			code: ErrProfileParse,
			want: true,
		},
		{
			name: "non-matching code",
			err:  New(ErrProfileParse, "bad yaml"),
			code: ErrProfileNotFound,
			want: false,
		},
		{
			name: "wrapped coded error",
			err:  fmt.Errorf("outer: %w", New(ErrSymlinkCreate, "link failed")),
			code: ErrSymlinkCreate,
			want: true,
		},
		{
			name: "plain error",
			err:  errors.New("plain"),
			code: ErrUnknown,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrDirCreate, GetErrorCode(New(ErrDirCreate, "mkdir failed")))
	assert.Equal(t, ErrUnknown, GetErrorCode(errors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrTargetExists, "target exists").
		WithDetail("path", "/home/user/.zshrc").
		WithDetail("kind", "file")

	assert.Equal(t, "/home/user/.zshrc", err.Details["path"])
	assert.Equal(t, "file", err.Details["kind"])
}
