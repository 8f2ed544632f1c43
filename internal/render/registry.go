package render

import (
	"fmt"

	"github.com/govportal/portalctl/internal/dao"
)

var renderers = map[dao.ResourceID]Renderer{
	dao.MenuRID:            new(Menu),
	dao.SliderRID:          new(Slider),
	dao.GalleryCategoryRID: new(GalleryCategory),
	dao.GalleryImageRID:    new(GalleryImage),
	dao.FAQRID:             new(FAQ),
	dao.SocialRID:          new(Social),
	dao.SettingRID:         new(Setting),
	dao.NoticeRID:          new(Notice),
	dao.OpportunityRID:     new(Opportunity),
	dao.PublicGalleryRID:   new(GalleryImage),
	dao.PublicFAQRID:       new(FAQ),
}

// For returns the renderer of a resource.
func For(rid *dao.ResourceID) (Renderer, error) {
	if rid == nil {
		return nil, fmt.Errorf("no renderer for nil resource")
	}
	r, ok := renderers[*rid]
	if !ok {
		return nil, fmt.Errorf("no renderer for: %s", rid)
	}

	return r, nil
}
