package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-ferrari-store/models"
)

// Page names understood by RootModel.
const (
	pageCatalog  = "catalog"
	pageDetail   = "detail"
	pageCart     = "cart"
	pageCheckout = "checkout"
	pageOrders   = "orders"
	pageLogin    = "login"
	pageRegister = "register"
)

// NavigateTo switches the active page. The new page is initialised and then
// receives Payload, when set.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// LoginResult finishes a login or registration attempt. Next is the page to
// open on success.
type LoginResult struct {
	User       models.User
	Registered bool
	Next       string
	Err        error
}

// signInMsg opens the login form with a reason and the page to return to.
type signInMsg struct {
	reason string
	next   string
}

// sessionExpiredMsg is emitted by a page whose request was rejected because
// the stored token expired.
type sessionExpiredMsg struct {
	next string
}

// noticeMsg shows a one-line status on the page that receives it.
type noticeMsg struct {
	text string
}

// reloadMsg asks a page to fetch its data again.
type reloadMsg struct{}

type productsLoadedMsg struct {
	page models.ProductPage
	err  error
}

type showProductMsg struct {
	product models.Product
}

type cartLoadedMsg struct {
	view models.CartView
	err  error
}

type orderPlacedMsg struct {
	order models.Order
	err   error
}

type ordersLoadedMsg struct {
	orders []models.Order
	err    error
}

type orderCancelledMsg struct {
	order models.Order
	err   error
}

type copiedMsg struct {
	text string
	err  error
}

type loggedOutMsg struct {
	err error
}
