package service

import (
	"strings"
	"testing"

	"github.com/cleanaz-dev/hueline-sub000/internal/constant"
	"github.com/cleanaz-dev/hueline-sub000/internal/dto"
	"github.com/cleanaz-dev/hueline-sub000/internal/entity"

	"github.com/stretchr/testify/assert"
)

func scopeItem(area, typ, name string) *entity.ScopeItem {
	return &entity.ScopeItem{Area: area, Type: typ, Item: name}
}

func TestGroupByAreaKitchenScenario(t *testing.T) {
	imageItem := scopeItem("kitchen", constant.ScopeTypeImage, "")
	imageItem.ImageUrls = []string{"https://cdn/x1.jpg", "https://cdn/x2.jpg"}

	items := []*entity.ScopeItem{
		scopeItem("kitchen", constant.ScopeTypeRepair, "drywall crack"),
		scopeItem("kitchen", constant.ScopeTypeRepair, "cabinet hinge"),
		imageItem,
	}

	groups := GroupByArea(items)

	if !assert.Len(t, groups, 1) {
		return
	}
	kitchen := groups[0]
	assert.Equal(t, "kitchen", kitchen.Area)

	// One REPAIR block with two rows; the IMAGE item never shows as a row.
	if assert.Len(t, kitchen.Categories, 1) {
		assert.Equal(t, constant.ScopeTypeRepair, kitchen.Categories[0].Type)
		assert.Len(t, kitchen.Categories[0].Items, 2)
	}

	// Both urls land in one gallery: first is cover, the rest counted.
	if assert.NotNil(t, kitchen.Gallery) {
		assert.Equal(t, "https://cdn/x1.jpg", kitchen.Gallery.Cover)
		assert.Equal(t, 1, kitchen.Gallery.Extra)
		assert.Len(t, kitchen.Gallery.Urls, 2)
	}
}

func TestGroupByAreaOrdering(t *testing.T) {
	items := []*entity.ScopeItem{
		scopeItem("garage", constant.ScopeTypeNote, "check wiring"),
		scopeItem("kitchen", constant.ScopeTypePaint, "walls"),
		scopeItem("garage", constant.ScopeTypeRepair, "door spring"),
		scopeItem("kitchen", constant.ScopeTypePrep, "sand trim"),
	}

	groups := GroupByArea(items)

	// Areas in first-appearance order.
	if assert.Len(t, groups, 2) {
		assert.Equal(t, "garage", groups[0].Area)
		assert.Equal(t, "kitchen", groups[1].Area)
	}

	// Categories follow the fixed display order, not arrival order.
	garageTypes := categoryTypes(groups[0])
	assert.Equal(t, []string{constant.ScopeTypeRepair, constant.ScopeTypeNote}, garageTypes)

	kitchenTypes := categoryTypes(groups[1])
	assert.Equal(t, []string{constant.ScopeTypePrep, constant.ScopeTypePaint}, kitchenTypes)
}

func TestGroupByAreaUnknownTypesKeepArrivalOrder(t *testing.T) {
	items := []*entity.ScopeItem{
		scopeItem("hall", constant.ScopeTypeQuestion, "who owns fence?"),
		scopeItem("hall", constant.ScopeTypeDetection, ""),
		scopeItem("hall", constant.ScopeTypeRepair, "baseboard"),
	}

	groups := GroupByArea(items)
	if !assert.Len(t, groups, 1) {
		return
	}

	types := categoryTypes(groups[0])
	// REPAIR is a fixed category so it sorts first; the rest trail as seen.
	assert.Equal(t, []string{constant.ScopeTypeRepair, constant.ScopeTypeQuestion, constant.ScopeTypeDetection}, types)
}

func TestGroupByAreaEmpty(t *testing.T) {
	assert.Empty(t, GroupByArea(nil))
}

func TestGroupByAreaEveryNonImageItemAppears(t *testing.T) {
	items := []*entity.ScopeItem{
		scopeItem("kitchen", constant.ScopeTypeRepair, "a"),
		scopeItem("bath", constant.ScopeTypeNote, "b"),
		scopeItem("kitchen", constant.ScopeTypeQuestion, "c"),
		scopeItem("porch", constant.ScopeTypePrep, "d"),
	}

	total := 0
	for _, g := range GroupByArea(items) {
		for _, c := range g.Categories {
			total += len(c.Items)
		}
	}
	assert.Equal(t, len(items), total)
}

func TestRenderSummary(t *testing.T) {
	items := []*entity.ScopeItem{
		{Area: "kitchen", Type: constant.ScopeTypeRepair, Item: "drywall", Action: "patch and sand"},
		{Area: "kitchen", Type: constant.ScopeTypeImage, ImageUrls: []string{"https://cdn/x.jpg"}},
	}

	body := RenderSummary("walk-42", GroupByArea(items))

	assert.True(t, strings.Contains(body, "walk-42"))
	assert.True(t, strings.Contains(body, "KITCHEN"))
	assert.True(t, strings.Contains(body, "drywall - patch and sand"))
	assert.True(t, strings.Contains(body, "Photos: 1"))
}

func TestRenderSummaryEmptyLedger(t *testing.T) {
	body := RenderSummary("walk-42", nil)
	assert.True(t, strings.Contains(body, "No scope items"))
}

func categoryTypes(group *dto.AreaGroupPayload) []string {
	out := make([]string, 0, len(group.Categories))
	for _, c := range group.Categories {
		out = append(out, c.Type)
	}
	return out
}
