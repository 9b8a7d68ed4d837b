package service

import (
	"context"
	"strings"

	domainauth "github.com/BeauMercier/drasticClientPortal/internal/domain/auth"
	"github.com/BeauMercier/drasticClientPortal/internal/domain/model"
)

// DashboardService builds the dashboard summary. The widgets are static.
type DashboardService struct{}

// NewDashboardService constructs a DashboardService.
func NewDashboardService() *DashboardService { return &DashboardService{} }

// Summary returns the dashboard for identity.
func (s *DashboardService) Summary(_ context.Context, identity domainauth.Identity) model.DashboardSummary {
	return model.DashboardSummary{
		Greeting:       greeting(identity),
		Stats:          staticStats(),
		RecentActivity: staticActivity(),
	}
}

func greeting(identity domainauth.Identity) string {
	name := strings.TrimSpace(identity.Name)
	if name == "" {
		name = "User"
	}
	return "Welcome back, " + name + "!"
}

func staticStats() []model.StatCard {
	return []model.StatCard{
		{Title: "Total Sales", Value: "$12,426", Change: "+8%", ChangeType: model.ChangeIncrease},
		{Title: "New Leads", Value: "32", Change: "+5%", ChangeType: model.ChangeIncrease},
		{Title: "Projects", Value: "12", Change: "0%", ChangeType: model.ChangeIncrease},
		{Title: "Conversion Rate", Value: "3.2%", Change: "-1%", ChangeType: model.ChangeDecrease},
	}
}

func staticActivity() []model.Activity {
	return []model.Activity{
		{ID: "1", Type: "invoice", Title: "Monthly hosting payment", Date: "2 days ago", Status: model.ActivityCompleted},
		{ID: "2", Type: "project", Title: "Website redesign project", Date: "1 week ago", Status: model.ActivityInProgress},
		{ID: "3", Type: "support", Title: "Support ticket #1234", Date: "3 days ago", Status: model.ActivityPending},
	}
}
