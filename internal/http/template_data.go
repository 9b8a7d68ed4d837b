package httpx

import (
	"net/http"

	domainauth "github.com/BeauMercier/drasticClientPortal/internal/domain/auth"
)

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// NavItem is one entry of the signed-in navigation bar.
type NavItem struct {
	Label string
	Path  string
	Page  string
}

var portalNav = []NavItem{
	{Label: "Dashboard", Path: DashboardPath, Page: PageDashboard},
	{Label: "My Info", Path: "/my-info", Page: PageMyInfo},
	{Label: "Files", Path: "/files", Page: PageFiles},
	{Label: "Support", Path: "/support", Page: PageSupport},
	{Label: "Billing", Path: "/billing", Page: PageBilling},
}

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
}

// NewTemplateData creates a new TemplateDataBuilder initialized with basePageData.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{data: basePageData(r, meta)}
}

// WithError sets a general error message.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	if msg == "" {
		return b
	}
	b.data["Error"] = true
	b.data["ErrorMessage"] = msg
	return b
}

// WithNotice sets an informational banner.
func (b *TemplateDataBuilder) WithNotice(msg string) *TemplateDataBuilder {
	if msg != "" {
		b.data["Notice"] = msg
	}
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}

// basePageData carries the layout fields every page needs.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	data := map[string]any{
		"Title":           meta.Title,
		"PageTitle":       meta.PageTitle,
		"CurrentPage":     meta.CurrentPage,
		"IsAuthenticated": false,
	}
	if sess, ok := GetUserSessionFromContext(r.Context()); ok {
		data["IsAuthenticated"] = true
		data["User"] = sess.Identity()
		data["IsAdmin"] = sess.Role == domainauth.RoleAdmin
		data["Nav"] = portalNav
	}
	return data
}
