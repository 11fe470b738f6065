package mq_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/YJ-0220/product-sub000/pkg/mq"
	"github.com/stretchr/testify/assert"
)

func TestShouldRequeue(t *testing.T) {
	cause := errors.New("database is busy")

	assert.True(t, mq.ShouldRequeue(mq.Temporary(cause)))
	assert.True(t, mq.ShouldRequeue(fmt.Errorf("reconcile user 7: %w", mq.Temporary(cause))))
	assert.False(t, mq.ShouldRequeue(cause))
	assert.False(t, mq.ShouldRequeue(nil))
}

func TestTemporary(t *testing.T) {
	cause := errors.New("timeout")

	err := mq.Temporary(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "timeout", err.Error())
	assert.NoError(t, mq.Temporary(nil))
}

func TestDeadLetterQueue(t *testing.T) {
	assert.Equal(t, "points.reconcile.dlq", mq.DeadLetterQueue("points.reconcile"))
}
