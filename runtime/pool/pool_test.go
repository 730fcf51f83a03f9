package pool

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPools(t *testing.T, opts ...Option) (*Pools, sqlmock.Sqlmock, sqlmock.Sqlmock) {
	t.Helper()
	readDB, readMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	writeDB, writeMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	pools := FromDBs(readDB, writeDB, opts...)
	t.Cleanup(func() { _ = pools.Close() })
	return pools, readMock, writeMock
}

func TestSelectorRouting(t *testing.T) {
	pools, _, _ := newMockPools(t)

	assert.Same(t, pools.read, pools.Selector(true))
	assert.Same(t, pools.write, pools.Selector(false))
	assert.NotSame(t, pools.Selector(true), pools.Selector(false))
}

func TestPrepareCachedReusesStatement(t *testing.T) {
	pools, readMock, _ := newMockPools(t)
	ctx := context.Background()

	const q = "SELECT * FROM public.users  "
	readMock.ExpectPrepare(q)

	db := pools.Selector(true)
	first, err := db.PrepareCached(ctx, q)
	require.NoError(t, err)

	// Second call must hit the cache, not prepare again; a second prepare
	// would fail the unmet-expectation check below.
	second, err := db.PrepareCached(ctx, q)
	require.NoError(t, err)
	assert.Same(t, first, second)

	require.NoError(t, readMock.ExpectationsWereMet())
}

func TestPrepareBypassesCache(t *testing.T) {
	pools, readMock, _ := newMockPools(t)
	ctx := context.Background()

	const q = "SELECT 1"
	readMock.ExpectPrepare(q)
	readMock.ExpectPrepare(q)

	db := pools.Selector(true)
	first, err := db.Prepare(ctx, q)
	require.NoError(t, err)
	defer first.Close()
	second, err := db.Prepare(ctx, q)
	require.NoError(t, err)
	defer second.Close()

	assert.NotSame(t, first, second)
	require.NoError(t, readMock.ExpectationsWereMet())
}

func TestPoolOptions(t *testing.T) {
	fs := afero.NewMemMapFs()
	pools, _, _ := newMockPools(t, WithQueryLibPath("/sql"), WithFs(fs))

	assert.Equal(t, "/sql", pools.QueryLibPath())
	assert.Same(t, fs, pools.Fs())
}

func TestDefaultFs(t *testing.T) {
	pools, _, _ := newMockPools(t)
	assert.NotNil(t, pools.Fs())
	assert.Empty(t, pools.QueryLibPath())
}
