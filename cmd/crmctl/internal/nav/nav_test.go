package nav

import (
	"testing"

	"github.com/Rahul675/indyanet-crm/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestInitialState(t *testing.T) {
	c := New()
	v := c.Current()
	assert.Equal(t, ViewingList, v.Kind)
	assert.Equal(t, "Dashboard", v.Key)
	assert.False(t, v.IsDetail())
	assert.Nil(t, v.Entity)
}

func TestSelectionIsMutuallyExclusive(t *testing.T) {
	c := New()
	customer := sdk.Record{"id": "c1"}
	cluster := sdk.Record{"id": "cl1"}

	c.SelectCustomer(customer)
	assert.Equal(t, customer, c.State().SelectedCustomer)

	c.SelectCluster(cluster)
	state := c.State()
	assert.Nil(t, state.SelectedCustomer)
	assert.Equal(t, cluster, state.SelectedCluster)
	assert.Nil(t, state.SelectedOperator)
	assert.Equal(t, ViewingClusterDetail, c.Current().Kind)

	c.SelectOperator(sdk.Record{"id": "o1"})
	state = c.State()
	assert.Nil(t, state.SelectedCluster)
	assert.Equal(t, "o1", state.SelectedOperator.ID())
}

func TestBackRestoresTab(t *testing.T) {
	c := New()
	c.SetActiveView("Customers")
	c.SelectCustomer(sdk.Record{"id": "c1"})
	require.True(t, c.Current().IsDetail())

	c.Back()
	v := c.Current()
	assert.Equal(t, ViewingList, v.Kind)
	assert.Equal(t, "Customers", v.Key)
	assert.Nil(t, c.State().SelectedCustomer)
}

func TestSetActiveViewIsDeferredDuringDetail(t *testing.T) {
	c := New()
	c.SetActiveView("Customers")
	c.SelectCustomer(sdk.Record{"id": "c1"})

	c.SetActiveView("Issues")
	assert.Equal(t, ViewingCustomerDetail, c.Current().Kind, "detail keeps rendering")
	assert.Equal(t, "c1", c.Current().Entity.ID())

	c.Back()
	assert.Equal(t, View{Kind: ViewingList, Key: "Issues"}, c.Current())

	c.SetActiveView("")
	assert.Equal(t, "Issues", c.ActiveViewKey(), "blank keys are ignored")
}

func TestGlobalSearchIsOneShot(t *testing.T) {
	c := New()
	c.SetGlobalSearch("RT-221")
	assert.Equal(t, "RT-221", c.State().PendingGlobalSearch)

	c.SelectCluster(sdk.Record{"id": "cl1"})
	v, ok := c.TakeGlobalSearch()
	require.True(t, ok)
	assert.Equal(t, "RT-221", v)

	c.Back()
	c.SelectCluster(sdk.Record{"id": "cl2"})
	_, ok = c.TakeGlobalSearch()
	assert.False(t, ok, "second render must not see the value again")
	assert.Empty(t, c.State().PendingGlobalSearch)

	c.SetGlobalSearch("")
	_, ok = c.TakeGlobalSearch()
	assert.False(t, ok)
}

func TestNilEntityIsStoredAsEmptyRecord(t *testing.T) {
	c := New()
	c.SelectOperator(nil)
	assert.NotNil(t, c.Current().Entity)
	assert.Equal(t, "operator", c.Current().Kind.String())
}
