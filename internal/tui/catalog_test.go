package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-ferrari-store/models"
)

func loadedCatalog(t *testing.T, m clientMocks, sess *session) *CatalogModel {
	t.Helper()
	m.catalog.EXPECT().ListProducts(gomock.Any(), models.ProductFilter{Sort: models.SortNewest, Limit: 100}).
		Return(models.ProductPage{Products: []models.Product{sf90, sf25}, Total: 2}, nil)

	c := NewCatalogModel(testCtx, m.catalog, m.auth, sess)
	msg := find[productsLoadedMsg](t, c.Init())
	_, cmd := c.Update(msg)
	collect(cmd)
	return c
}

func TestCatalog_LoadsOnce(t *testing.T) {
	m := newClientMocks(t)
	c := loadedCatalog(t, m, &session{})

	assert.Len(t, c.list.Items(), 2)
	assert.Equal(t, 2, c.total)
	assert.Nil(t, c.Init(), "coming back to the catalog keeps the loaded page")
	assert.Contains(t, c.View(), "SF90 Stradale")
	assert.Contains(t, c.View(), "R$ 1.299,90")
}

func TestCatalog_CyclesProductType(t *testing.T) {
	m := newClientMocks(t)
	c := loadedCatalog(t, m, &session{})

	m.catalog.EXPECT().ListProducts(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f models.ProductFilter) (models.ProductPage, error) {
			assert.Equal(t, models.ProductTypeCar, f.Type)
			return models.ProductPage{Products: []models.Product{sf90}, Total: 1}, nil
		})

	_, cmd := c.Update(press("t"))
	_, cmd = c.Update(find[productsLoadedMsg](t, cmd))
	collect(cmd)

	assert.Len(t, c.list.Items(), 1)
	assert.Contains(t, c.View(), "Road car")
}

func TestCatalog_LoadError(t *testing.T) {
	m := newClientMocks(t)
	m.catalog.EXPECT().ListProducts(gomock.Any(), gomock.Any()).
		Return(models.ProductPage{}, errors.New("dial tcp 127.0.0.1:8080: connect: connection refused"))

	c := NewCatalogModel(testCtx, m.catalog, m.auth, &session{})
	c.Update(find[productsLoadedMsg](t, c.Init()))

	assert.Contains(t, c.View(), "No network or the store is unavailable")
}

func TestCatalog_EnterOpensProduct(t *testing.T) {
	c := loadedCatalog(t, newClientMocks(t), &session{})

	_, cmd := c.Update(press("enter"))

	nav := find[NavigateTo](t, cmd)
	assert.Equal(t, pageDetail, nav.Page)
	assert.Equal(t, showProductMsg{product: sf90}, nav.Payload)
}

func TestCatalog_Navigation(t *testing.T) {
	tests := []struct {
		name    string
		sess    *session
		key     string
		want    string
		payload tea.Msg
	}{
		{name: "cart signed out", sess: &session{}, key: "c", want: pageCart},
		{name: "orders signed out", sess: &session{}, key: "o", want: pageLogin, payload: signInMsg{reason: "Sign in to see your orders", next: pageOrders}},
		{name: "orders signed in", sess: signedIn(), key: "o", want: pageOrders},
		{name: "account", sess: &session{}, key: "a", want: pageLogin, payload: signInMsg{next: pageCatalog}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCatalogModel(testCtx, nil, nil, tt.sess)

			_, cmd := c.Update(press(tt.key))

			nav := find[NavigateTo](t, cmd)
			assert.Equal(t, tt.want, nav.Page)
			assert.Equal(t, tt.payload, nav.Payload)
		})
	}
}

func TestCatalog_Logout(t *testing.T) {
	m := newClientMocks(t)
	m.auth.EXPECT().Logout(gomock.Any()).Return(nil)
	c := NewCatalogModel(testCtx, m.catalog, m.auth, signedIn())

	_, cmd := c.Update(press("L"))
	out := find[loggedOutMsg](t, cmd)
	require.NoError(t, out.err)

	c.Update(out)
	assert.Contains(t, c.View(), "Signed out")
}

func TestCatalog_SearchCapturesKeys(t *testing.T) {
	m := newClientMocks(t)
	c := loadedCatalog(t, m, &session{})

	c.Update(press("/"))
	require.True(t, c.filtering())
	assert.Equal(t, list.Filtering, c.list.FilterState())

	// "t" is typed into the search box instead of switching the type
	_, cmd := c.Update(press("t"))
	for _, msg := range collect(cmd) {
		_, isLoad := msg.(productsLoadedMsg)
		assert.False(t, isLoad)
	}
}
