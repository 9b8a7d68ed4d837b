package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/BeauMercier/drasticClientPortal/internal/domain/auth"
	"github.com/BeauMercier/drasticClientPortal/internal/domain/model"
)

func TestDashboardService_Summary(t *testing.T) {
	svc := NewDashboardService()

	got := svc.Summary(context.Background(), domainauth.Identity{Name: "Jane Doe", Email: "jane@acme.com"})

	assert.Equal(t, "Welcome back, Jane Doe!", got.Greeting)
	require.Len(t, got.Stats, 4)
	assert.Equal(t, model.StatCard{Title: "Total Sales", Value: "$12,426", Change: "+8%", ChangeType: model.ChangeIncrease}, got.Stats[0])
	assert.Equal(t, model.ChangeDecrease, got.Stats[3].ChangeType)

	require.Len(t, got.RecentActivity, 3)
	assert.Equal(t, "Monthly hosting payment", got.RecentActivity[0].Title)
	assert.Equal(t, model.ActivityInProgress, got.RecentActivity[1].Status)
	assert.Equal(t, "support", got.RecentActivity[2].Type)
}

func TestDashboardService_GreetingFallback(t *testing.T) {
	got := NewDashboardService().Summary(context.Background(), domainauth.Identity{Email: "x@y.z"})
	assert.Equal(t, "Welcome back, User!", got.Greeting)
}
