package errno

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestConvertErr(t *testing.T) {
	t.Run("nil is success", func(t *testing.T) {
		assert.Equal(t, Success, ConvertErr(nil))
	})

	t.Run("wrapped ErrNo keeps code and message", func(t *testing.T) {
		err := errors.Wrap(NotFoundErr.WithMessage("Video not found"), "get video")
		got := ConvertErr(err)
		assert.Equal(t, NotFoundCode, got.ErrCode)
		assert.Equal(t, "Video not found", got.ErrMsg)
	})

	t.Run("unknown error hides cause", func(t *testing.T) {
		got := ConvertErr(errors.New("mongo: connection refused at 10.0.0.3"))
		assert.Equal(t, ServiceErrCode, got.ErrCode)
		assert.NotContains(t, got.ErrMsg, "10.0.0.3")
	})
}

func TestErrNoIs(t *testing.T) {
	err := errors.WithMessage(ForbiddenErr.WithMessage("only the owner can delete"), "delete tweet")
	assert.True(t, errors.Is(err, ForbiddenErr))
	assert.False(t, errors.Is(err, NotFoundErr))
}

func TestMissingFields(t *testing.T) {
	e := MissingFields("title", "description")
	assert.Equal(t, InvalidArgumentCode, e.ErrCode)
	assert.Equal(t, []string{"title is required", "description is required"}, e.Errors)
	assert.False(t, e.Success())
	assert.True(t, Created.Success())
}
