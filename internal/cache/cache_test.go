package cache

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingLoader(calls *int32, value any) func(context.Context) (any, error) {
	return func(context.Context) (any, error) {
		atomic.AddInt32(calls, 1)
		return value, nil
	}
}

func TestFetch_ServesCachedInsideStaleWindow(t *testing.T) {
	c := New(30 * time.Second)
	var calls int32

	for i := 0; i < 3; i++ {
		v, err := c.Fetch(context.Background(), "leads?page=1", countingLoader(&calls, "page-one"))
		require.NoError(t, err)
		assert.Equal(t, "page-one", v)
	}
	assert.Equal(t, int32(1), calls)
}

func TestFetch_RefetchesOnceStale(t *testing.T) {
	now := time.Now()
	c := New(30 * time.Second)
	c.nowFunc = func() time.Time { return now }
	var calls int32

	_, err := c.Fetch(context.Background(), "products", countingLoader(&calls, "v1"))
	require.NoError(t, err)

	now = now.Add(31 * time.Second)
	_, err = c.Fetch(context.Background(), "products", countingLoader(&calls, "v2"))
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls)
}

func TestFetch_CollapsesConcurrentLoads(t *testing.T) {
	c := New(30 * time.Second)
	var calls int32
	loader := func(context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(50 * time.Millisecond)
		return "shared", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Fetch(context.Background(), "deals", loader)
			assert.NoError(t, err)
			assert.Equal(t, "shared", v)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), calls)
}

func TestFetch_RetriesFailedLoadOnce(t *testing.T) {
	c := New(30 * time.Second)
	var calls int32
	flaky := func(context.Context) (any, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, errors.New("connection reset")
		}
		return "recovered", nil
	}

	v, err := c.Fetch(context.Background(), "customers", flaky)
	require.NoError(t, err)
	assert.Equal(t, "recovered", v)
	assert.Equal(t, int32(2), calls)

	calls = 0
	broken := func(context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errors.New("down")
	}
	_, err = c.Fetch(context.Background(), "dashboard/stats", broken)
	require.Error(t, err)
	assert.Equal(t, int32(2), calls, "a failing load is attempted exactly twice")
}

func TestInvalidate_IsIdempotentAndPrefixScoped(t *testing.T) {
	c := New(30 * time.Second)
	var leadCalls, productCalls int32

	seed := func() {
		c.Fetch(context.Background(), "leads?page=1", countingLoader(&leadCalls, "l"))
		c.Fetch(context.Background(), "leads/5", countingLoader(&leadCalls, "l5"))
		c.Fetch(context.Background(), "products", countingLoader(&productCalls, "p"))
	}
	seed()
	require.Equal(t, int32(2), leadCalls)
	require.Equal(t, int32(1), productCalls)

	c.Invalidate("leads")
	c.Invalidate("leads")

	seed()
	assert.Equal(t, int32(4), leadCalls, "both lead entries refetch exactly once after a double invalidate")
	assert.Equal(t, int32(1), productCalls, "products entry is untouched")

	// "leadsources" must not be swept by the "leads" prefix
	var otherCalls int32
	c.Fetch(context.Background(), "leadsources", countingLoader(&otherCalls, "x"))
	c.Invalidate("leads")
	c.Fetch(context.Background(), "leadsources", countingLoader(&otherCalls, "x"))
	assert.Equal(t, int32(1), otherCalls)
}

func TestListKey_CanonicalOrder(t *testing.T) {
	a := url.Values{}
	a.Set("page", "2")
	a.Set("status", "NEW")
	b := url.Values{}
	b.Set("status", "NEW")
	b.Set("page", "2")
	assert.Equal(t, ListKey(PrefixLeads, a), ListKey(PrefixLeads, b))
	assert.Equal(t, PrefixLeads, ListKey(PrefixLeads, nil))
}

func TestClosure_MutationTable(t *testing.T) {
	assert.ElementsMatch(t, []string{PrefixLeads, PrefixDashboard}, Closure(MutationLead))
	assert.ElementsMatch(t, []string{PrefixLeads, PrefixDeals, PrefixCustomers, PrefixDashboard}, Closure(MutationLeadConvert))
	assert.ElementsMatch(t, []string{PrefixProducts}, Closure(MutationProduct))
	assert.ElementsMatch(t, []string{PrefixDeals, PrefixLeads, PrefixCustomers, PrefixDashboard}, Closure(MutationDeal))
}

func TestInvalidateMutation_SweepsClosure(t *testing.T) {
	c := New(30 * time.Second)
	var dealCalls, productCalls int32
	c.Fetch(context.Background(), DetailKey(PrefixDeals, 7), countingLoader(&dealCalls, "d"))
	c.Fetch(context.Background(), PrefixProducts, countingLoader(&productCalls, "p"))

	c.InvalidateMutation(MutationDeal)

	c.Fetch(context.Background(), DetailKey(PrefixDeals, 7), countingLoader(&dealCalls, "d"))
	c.Fetch(context.Background(), PrefixProducts, countingLoader(&productCalls, "p"))
	assert.Equal(t, int32(2), dealCalls)
	assert.Equal(t, int32(1), productCalls)
}
