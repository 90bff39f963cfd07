package service

import (
	"fmt"
	"strings"

	"github.com/cleanaz-dev/hueline-sub000/internal/constant"
	"github.com/cleanaz-dev/hueline-sub000/internal/dto"
	"github.com/cleanaz-dev/hueline-sub000/internal/entity"
)

func toItemPayload(item *entity.ScopeItem) *dto.ScopeItemPayload {
	return &dto.ScopeItemPayload{
		Id:            item.Id,
		Type:          item.Type,
		Area:          item.Area,
		Item:          item.Item,
		Action:        item.Action,
		ImageUrls:     item.ImageUrls,
		DetectionData: item.DetectionData,
		Timestamp:     item.Timestamp,
	}
}

func toItemPayloads(items []*entity.ScopeItem) []*dto.ScopeItemPayload {
	out := make([]*dto.ScopeItemPayload, len(items))
	for i, item := range items {
		out[i] = toItemPayload(item)
	}
	return out
}

// GroupByArea partitions the ledger for display: areas in first-appearance
// order, categories inside each area in the fixed order REPAIR, PREP,
// PAINT, NOTE and then any other types as they appeared. IMAGE items never
// show in category tables; their urls roll into the area's gallery with the
// first url as cover and the rest counted as "+N".
func GroupByArea(items []*entity.ScopeItem) []*dto.AreaGroupPayload {
	var areaOrder []string
	byArea := make(map[string][]*entity.ScopeItem)

	// Grouping is read-side: areas partition as stored, no re-normalization
	for _, item := range items {
		if _, seen := byArea[item.Area]; !seen {
			areaOrder = append(areaOrder, item.Area)
		}
		byArea[item.Area] = append(byArea[item.Area], item)
	}

	groups := make([]*dto.AreaGroupPayload, 0, len(areaOrder))
	for _, area := range areaOrder {
		group := &dto.AreaGroupPayload{Area: area}

		var typeOrder []string
		byType := make(map[string][]*entity.ScopeItem)
		var galleryUrls []string

		for _, item := range byArea[area] {
			if item.Type == constant.ScopeTypeImage {
				galleryUrls = append(galleryUrls, item.ImageUrls...)
				continue
			}
			if _, seen := byType[item.Type]; !seen {
				typeOrder = append(typeOrder, item.Type)
			}
			byType[item.Type] = append(byType[item.Type], item)
		}

		// Fixed categories first, leftover types keep arrival order
		for _, t := range constant.CategoryDisplayOrder {
			if items, ok := byType[t]; ok {
				group.Categories = append(group.Categories, &dto.CategoryGroupPayload{
					Type:  t,
					Items: toItemPayloads(items),
				})
				delete(byType, t)
			}
		}
		for _, t := range typeOrder {
			if items, ok := byType[t]; ok {
				group.Categories = append(group.Categories, &dto.CategoryGroupPayload{
					Type:  t,
					Items: toItemPayloads(items),
				})
			}
		}

		if len(galleryUrls) > 0 {
			group.Gallery = &dto.GalleryPayload{
				Cover: galleryUrls[0],
				Extra: len(galleryUrls) - 1,
				Urls:  galleryUrls,
			}
		}

		groups = append(groups, group)
	}
	return groups
}

// RenderSummary flattens the grouped ledger into the plain-text body of the
// end-of-session email.
func RenderSummary(roomKey string, areas []*dto.AreaGroupPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scope of work - walkthrough %s\n", roomKey)

	if len(areas) == 0 {
		b.WriteString("\nNo scope items were captured during this session.\n")
		return b.String()
	}

	for _, area := range areas {
		fmt.Fprintf(&b, "\n%s\n", strings.ToUpper(area.Area))
		for _, cat := range area.Categories {
			fmt.Fprintf(&b, "  %s:\n", cat.Type)
			for _, item := range cat.Items {
				line := item.Item
				if item.Action != "" {
					if line != "" {
						line += " - "
					}
					line += item.Action
				}
				fmt.Fprintf(&b, "    - %s\n", line)
			}
		}
		if area.Gallery != nil {
			fmt.Fprintf(&b, "  Photos: %d\n", len(area.Gallery.Urls))
		}
	}
	return b.String()
}
