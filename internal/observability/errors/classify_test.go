package errors

import (
	"context"
	goerrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type classified struct{ class string }

func (c classified) Error() string      { return "classified" }
func (c classified) ErrorClass() string { return c.class }

type plainErr struct{}

func (*plainErr) Error() string { return "plain" }

func TestClassify(t *testing.T) {
	assert.Empty(t, Classify(nil))
	assert.Equal(t, "api_transport", Classify(fmt.Errorf("list users: %w", classified{class: "api_transport"})))
	assert.Equal(t, "errors_plainerr", Classify(fmt.Errorf("wrap: %w", &plainErr{})))
	assert.Equal(t, "errors_errorstring", Classify(goerrors.New("boom")))
	assert.Equal(t, "context_deadlineexceedederror", Classify(context.DeadlineExceeded))
}
