package service_test

import (
	"testing"
	"time"

	"github.com/calculisto/crm_server/models"
	"github.com/calculisto/crm_server/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminUser() *models.User {
	return &models.User{
		ID:              "1",
		Name:            "Admin User",
		Email:           "admin@calculisto.com",
		Role:            models.UserRoleADMIN,
		AssignedRegions: []string{models.RegionAll},
	}
}

func salesUser(regions ...string) *models.User {
	return &models.User{
		ID:              "2",
		Name:            "Sales Agent 1",
		Email:           "sales1@calculisto.com",
		Role:            models.UserRoleSALES,
		AssignedRegions: regions,
	}
}

func sampleLeads() []models.Lead {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return []models.Lead{
		{
			ID: "1", FullName: "Ana Souza", Email: "ana@exemplo.com", PhoneNumber: "5511999000111",
			University: "USP", CampaignName: "Fall 2024 Intake", Country: "Brazil",
			Status: models.LeadStatusNEW, CreatedAt: base,
		},
		{
			ID: "2", FullName: "Carlos Gomez", Email: "carlos@ejemplo.com", PhoneNumber: "3466000222",
			University: "UCM", CampaignName: "Meta Campaign Q1", Country: "Spain",
			Status: models.LeadStatusWON, CreatedAt: base.Add(24 * time.Hour),
		},
		{
			ID: "3", FullName: "Beatriz Lima", Email: "bia@exemplo.com", PhoneNumber: "5521988000333",
			University: "UFRJ", CampaignName: "Fall 2024 Intake", Country: "Brazil",
			Status: models.LeadStatusWON, CreatedAt: base.Add(48 * time.Hour), AssignedTo: "2",
		},
		{
			ID: "4", FullName: "Diego Alves", Email: "diego@exemplo.com", PhoneNumber: "351911000444",
			University: "IST", CampaignName: "Summer Special", Country: "Portugal",
			Status: models.LeadStatusLOST, CreatedAt: base.Add(72 * time.Hour),
		},
	}
}

func TestVisibleLeadsAdminSeesAll(t *testing.T) {
	leads := sampleLeads()

	visible := service.VisibleLeads(adminUser(), leads)

	assert.Len(t, visible, len(leads))
}

func TestVisibleLeadsSalesScopedToRegions(t *testing.T) {
	leads := sampleLeads()

	visible := service.VisibleLeads(salesUser("Brazil"), leads)

	require.Len(t, visible, 2)
	assert.Equal(t, "1", visible[0].ID)
	assert.Equal(t, "3", visible[1].ID)
}

func TestVisibleLeadsAllSentinelEqualsAdmin(t *testing.T) {
	leads := sampleLeads()

	fromSentinel := service.VisibleLeads(salesUser("Brazil", models.RegionAll), leads)
	fromAdmin := service.VisibleLeads(adminUser(), leads)

	assert.Equal(t, fromAdmin, fromSentinel)
}

func TestVisibleLeadsNilUser(t *testing.T) {
	assert.Empty(t, service.VisibleLeads(nil, sampleLeads()))
}

func TestFilterLeadsSearchMatchesNameEmailUniversity(t *testing.T) {
	leads := sampleLeads()

	byName := service.FilterLeads(leads, models.LeadFilter{Search: "ana sou"})
	require.Len(t, byName, 1)
	assert.Equal(t, "1", byName[0].ID)

	byEmail := service.FilterLeads(leads, models.LeadFilter{Search: "CARLOS@EJEMPLO.COM"})
	require.Len(t, byEmail, 1)
	assert.Equal(t, "2", byEmail[0].ID)

	byUniversity := service.FilterLeads(leads, models.LeadFilter{Search: "ufrj"})
	require.Len(t, byUniversity, 1)
	assert.Equal(t, "3", byUniversity[0].ID)
}

func TestFilterLeadsSearchMatchesPhoneRaw(t *testing.T) {
	leads := sampleLeads()

	matched := service.FilterLeads(leads, models.LeadFilter{Search: "5521988"})

	require.Len(t, matched, 1)
	assert.Equal(t, "3", matched[0].ID)
}

func TestFilterLeadsConjunctiveComposition(t *testing.T) {
	leads := sampleLeads()
	combined := models.LeadFilter{
		Status:   models.LeadStatusWON,
		Campaign: "Fall 2024 Intake",
	}

	direct := service.FilterLeads(leads, combined)
	chained := service.FilterLeads(
		service.FilterLeads(leads, models.LeadFilter{Status: models.LeadStatusWON}),
		models.LeadFilter{Campaign: "Fall 2024 Intake"},
	)

	assert.Equal(t, chained, direct)
	require.Len(t, direct, 1)
	assert.Equal(t, "3", direct[0].ID)
}

func TestFilterLeadsPreservesInputOrder(t *testing.T) {
	leads := sampleLeads()

	matched := service.FilterLeads(leads, models.LeadFilter{Campaign: "Fall 2024 Intake"})

	require.Len(t, matched, 2)
	assert.Equal(t, "1", matched[0].ID)
	assert.Equal(t, "3", matched[1].ID)
}

func TestFilterLeadsEmptyFilterPassesThrough(t *testing.T) {
	leads := sampleLeads()

	assert.Equal(t, leads, service.FilterLeads(leads, models.LeadFilter{}))
}

func TestFilterLeadsDateRangeInclusive(t *testing.T) {
	leads := sampleLeads()
	start := leads[1].CreatedAt
	end := leads[2].CreatedAt

	matched := service.FilterLeads(leads, models.LeadFilter{StartDate: &start, EndDate: &end})

	require.Len(t, matched, 2)
	assert.Equal(t, "2", matched[0].ID)
	assert.Equal(t, "3", matched[1].ID)
}

func TestFilterLeadsAssignedTo(t *testing.T) {
	matched := service.FilterLeads(sampleLeads(), models.LeadFilter{AssignedTo: "2"})

	require.Len(t, matched, 1)
	assert.Equal(t, "3", matched[0].ID)
}

func TestLeadsByStatusOnScopedVisibleSet(t *testing.T) {
	// 区域外的线索即使阶段命中也不可见
	leads := []models.Lead{
		{ID: "1", Country: "Brazil", Status: models.LeadStatusNEW},
		{ID: "2", Country: "Spain", Status: models.LeadStatusWON},
	}
	agent := salesUser("Brazil")

	visible := service.VisibleLeads(agent, leads)
	require.Len(t, visible, 1)
	assert.Equal(t, "1", visible[0].ID)

	won := service.LeadsByStatus(visible, models.LeadStatusWON)
	assert.Empty(t, won)
}

func TestLeadsByStatusEqualsStatusOnlyFilter(t *testing.T) {
	leads := sampleLeads()

	assert.Equal(t,
		service.FilterLeads(leads, models.LeadFilter{Status: models.LeadStatusWON}),
		service.LeadsByStatus(leads, models.LeadStatusWON),
	)
}
