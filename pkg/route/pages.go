package route

import "strings"

// Page names, used as template names by the page renderer.
const (
	Home              = "home"
	Login             = "login"
	Register          = "register"
	CustomerDashboard = "dashboard-customer"
	BarberDashboard   = "dashboard-barber"
	Booking           = "booking"
)

// BarberIDParam is the route parameter carried by the booking page.
const BarberIDParam = "barberId"

// Page binds a URL pattern to the page component rendered for it.
type Page struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Title string `json:"title"`
}

// Pages is the page table in dispatch order. There is no catch-all entry.
var Pages = []Page{
	{Name: Home, Path: "/", Title: "Home"},
	{Name: Login, Path: "/login", Title: "Login"},
	{Name: Register, Path: "/register", Title: "Register"},
	{Name: CustomerDashboard, Path: "/dashboard/customer", Title: "Customer Dashboard"},
	{Name: BarberDashboard, Path: "/dashboard/barber", Title: "Barber Dashboard"},
	{Name: Booking, Path: "/book/:" + BarberIDParam, Title: "Book Appointment"},
}

// Lookup returns the page registered under name.
func Lookup(name string) (Page, bool) {
	for _, p := range Pages {
		if p.Name == name {
			return p, true
		}
	}
	return Page{}, false
}

// Params lists the named parameters in the page's path pattern.
func (p Page) Params() []string {
	var params []string
	for _, seg := range strings.Split(p.Path, "/") {
		if strings.HasPrefix(seg, ":") {
			params = append(params, strings.TrimPrefix(seg, ":"))
		}
	}
	return params
}
