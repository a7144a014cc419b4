package services

import (
	"context"
	"sort"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/models"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/repositories"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/domain"
)

// HierarchyService derives the district → division → area tree from officer
// accounts. Nothing is stored; every call reads the current officers.
type HierarchyService struct {
	userRepo repositories.UserRepository
}

// NewHierarchyService creates a new hierarchy service
func NewHierarchyService(userRepo repositories.UserRepository) *HierarchyService {
	return &HierarchyService{userRepo: userRepo}
}

// OfficerSummary identifies the officer holding a seat
type OfficerSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Area is one GS area
type Area struct {
	AreaCode string          `json:"area_code"`
	AreaName string          `json:"area_name"`
	Officer  *OfficerSummary `json:"officer,omitempty"`
}

// DivisionNode is one DS division in the org chart
type DivisionNode struct {
	DivisionName string          `json:"division_name"`
	DSOfficer    *OfficerSummary `json:"ds_officer"`
	GSAreas      []Area          `json:"gs_areas"`
}

// DistrictNode is one district in the org chart
type DistrictNode struct {
	DistrictName string                   `json:"district_name"`
	Divisions    map[string]*DivisionNode `json:"divisions"`
}

// GSAreas groups GS areas by district then division code, for the cause form
func (s *HierarchyService) GSAreas(ctx context.Context) (map[string]map[string][]Area, error) {
	officers, err := s.userRepo.ListByRoles(ctx, string(domain.RoleGS))
	if err != nil {
		return nil, err
	}

	out := make(map[string]map[string][]Area)
	for _, u := range officers {
		divisions, ok := out[u.DistrictCode]
		if !ok {
			divisions = make(map[string][]Area)
			out[u.DistrictCode] = divisions
		}
		divisions[u.DivisionCode] = append(divisions[u.DivisionCode], Area{
			AreaCode: u.AreaCode,
			AreaName: u.AreaName,
		})
	}

	for _, divisions := range out {
		for code := range divisions {
			sortAreas(divisions[code])
		}
	}
	return out, nil
}

// OrgChart returns every district with its DS and GS officers
func (s *HierarchyService) OrgChart(ctx context.Context) (map[string]*DistrictNode, error) {
	officers, err := s.userRepo.ListByRoles(ctx, string(domain.RoleGS), string(domain.RoleDS))
	if err != nil {
		return nil, err
	}

	chart := make(map[string]*DistrictNode)
	for _, u := range officers {
		district, ok := chart[u.DistrictCode]
		if !ok {
			district = &DistrictNode{
				DistrictName: u.DistrictName,
				Divisions:    make(map[string]*DivisionNode),
			}
			chart[u.DistrictCode] = district
		}
		if district.DistrictName == "" {
			district.DistrictName = u.DistrictName
		}

		division, ok := district.Divisions[u.DivisionCode]
		if !ok {
			division = &DivisionNode{
				DivisionName: u.DivisionName,
				GSAreas:      []Area{},
			}
			district.Divisions[u.DivisionCode] = division
		}
		if division.DivisionName == "" {
			division.DivisionName = u.DivisionName
		}

		switch domain.Role(u.Role) {
		case domain.RoleDS:
			division.DSOfficer = summarize(u)
		case domain.RoleGS:
			division.GSAreas = append(division.GSAreas, Area{
				AreaCode: u.AreaCode,
				AreaName: u.AreaName,
				Officer:  summarize(u),
			})
		}
	}

	for _, district := range chart {
		for _, division := range district.Divisions {
			sortAreas(division.GSAreas)
		}
	}
	return chart, nil
}

// ResolveArea returns the full address of a GS area, taken from the officer
// that holds it.
func (s *HierarchyService) ResolveArea(ctx context.Context, areaCode, divisionCode string) (domain.Hierarchy, error) {
	officer, err := s.userRepo.FindGSOfficer(ctx, areaCode, divisionCode)
	if err != nil {
		return domain.Hierarchy{}, err
	}
	return officer.Hierarchy(), nil
}

func summarize(u *models.User) *OfficerSummary {
	return &OfficerSummary{ID: u.ID, Username: u.Username, Email: u.Email}
}

func sortAreas(areas []Area) {
	sort.Slice(areas, func(i, j int) bool { return areas[i].AreaCode < areas[j].AreaCode })
}
