package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"roomrates/internal/app/uow"
)

func TestFactory_RequiresDatabaseAndRepositories(t *testing.T) {
	_, err := Factory{}.Begin(context.Background(), uow.TxOptions{})
	assert.ErrorIs(t, err, ErrUnitOfWorkNotConfigured)
}
