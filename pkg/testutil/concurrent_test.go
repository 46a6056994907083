package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunConcurrent(t *testing.T) {
	res := RunConcurrent(10, func(idx int) error {
		if idx%2 == 0 {
			return errors.New("even")
		}
		return nil
	})

	assert.Equal(t, int32(5), res.Successes)
	assert.Equal(t, int32(5), res.Errors)
	assert.Equal(t, int32(10), res.Total())
}

func TestRunConcurrentCtx(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := RunConcurrentCtx(ctx, 4, func(ctx context.Context, _ int) error {
		return ctx.Err()
	})

	assert.Equal(t, int32(0), res.Successes)
	assert.Equal(t, int32(4), res.Errors)
}

func TestListBody(t *testing.T) {
	assert.JSONEq(t, `[]`, string(ListBody()))
	assert.JSONEq(t,
		`[{"MalePrincipalSponsor":"Mr. Jose Ramos","FemalePrincipalSponsor":"Mrs. Carmen Ramos"}]`,
		string(ListBody(SponsorRecords()[0])))
}
