package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/govportal/portalctl/internal/client"
	"github.com/govportal/portalctl/internal/model1"
)

var (
	// ErrReadOnly is returned for mutations while read only mode is on.
	ErrReadOnly = errors.New("portalctl is in read-only mode")

	// ErrNoID is returned when a row carries no id.
	ErrNoID = errors.New("row has no id")
)

// ResourceID identifies a portal resource type.
type ResourceID struct {
	Group    string // e.g. "admin", "gallery", "public"
	Resource string // e.g. "menu", "slider", "notice"
}

// String returns a string representation in the form "group/resource".
func (r ResourceID) String() string {
	return r.Group + "/" + r.Resource
}

// Parse parses a string in the form "group/resource".
func (r *ResourceID) Parse(s string) error {
	group, resource, ok := strings.Cut(s, "/")
	if !ok || group == "" || resource == "" || strings.Contains(resource, "/") {
		return fmt.Errorf("invalid resource ID format: %q (expected group/resource)", s)
	}
	r.Group, r.Resource = group, resource

	return nil
}

// Path returns the REST collection path of the resource.
func (r ResourceID) Path() string {
	if p, ok := restPaths[r]; ok {
		return p
	}
	return r.Group + "/" + r.Resource + "s"
}

// Table returns the SQL table backing the resource.
func (r ResourceID) Table() string {
	if t, ok := sqlTables[r]; ok {
		return t
	}
	return r.Resource + "s"
}

// IsPublic returns true for read only public listings.
func (r ResourceID) IsPublic() bool {
	return r.Group == "public"
}

var (
	MenuRID            = ResourceID{Group: "admin", Resource: "menu"}
	SliderRID          = ResourceID{Group: "admin", Resource: "slider"}
	GalleryCategoryRID = ResourceID{Group: "gallery", Resource: "category"}
	GalleryImageRID    = ResourceID{Group: "gallery", Resource: "image"}
	FAQRID             = ResourceID{Group: "admin", Resource: "faq"}
	SocialRID          = ResourceID{Group: "admin", Resource: "social"}
	SettingRID         = ResourceID{Group: "admin", Resource: "setting"}
	NoticeRID          = ResourceID{Group: "public", Resource: "notice"}
	OpportunityRID     = ResourceID{Group: "public", Resource: "opportunity"}
	PublicGalleryRID   = ResourceID{Group: "public", Resource: "gallery"}
	PublicFAQRID       = ResourceID{Group: "public", Resource: "faq"}
)

// AllRIDs lists the known resources.
var AllRIDs = []ResourceID{
	MenuRID,
	SliderRID,
	GalleryCategoryRID,
	GalleryImageRID,
	FAQRID,
	SocialRID,
	SettingRID,
	NoticeRID,
	OpportunityRID,
	PublicGalleryRID,
	PublicFAQRID,
}

var restPaths = map[ResourceID]string{
	MenuRID:            "admin/menus",
	SliderRID:          "admin/sliders",
	GalleryCategoryRID: "admin/gallery-categories",
	GalleryImageRID:    "admin/gallery-images",
	FAQRID:             "admin/faqs",
	SocialRID:          "admin/social-links",
	SettingRID:         "admin/settings",
	NoticeRID:          "public/notices",
	OpportunityRID:     "public/opportunities",
	PublicGalleryRID:   "public/gallery",
	PublicFAQRID:       "public/faqs",
}

var sqlTables = map[ResourceID]string{
	MenuRID:            "menus",
	SliderRID:          "sliders",
	GalleryCategoryRID: "gallery_categories",
	GalleryImageRID:    "gallery_images",
	FAQRID:             "faqs",
	SocialRID:          "social_links",
	SettingRID:         "settings",
	NoticeRID:          "notices",
	OpportunityRID:     "opportunities",
	PublicGalleryRID:   "gallery_images",
	PublicFAQRID:       "faqs",
}

// Factory provides the backends accessors talk to.
type Factory interface {
	Client() client.Connection
	DB() *sql.DB
	Cache() *PageCache
	ReadOnly() bool
	Profile() string
	SetProfile(profile string) error
}

// Getter retrieves a single record by id.
type Getter interface {
	Get(ctx context.Context, id string) (model1.Row, error)
}

// Lister retrieves one page of records.
type Lister interface {
	List(ctx context.Context, q *model1.Query) (model1.Page[model1.Row], error)
}

// Updater applies a JSON patch to a record.
type Updater interface {
	Update(ctx context.Context, id string, patch []byte) (model1.Row, error)
}

// Nuker deletes a record.
type Nuker interface {
	Delete(ctx context.Context, id string) error
}

// Accessor combines the record operations with initialization.
type Accessor interface {
	Getter
	Lister
	Updater
	Nuker
	Init(Factory, *ResourceID)
	ResourceID() *ResourceID
}

// Describer provides formatted views of a record.
type Describer interface {
	Describe(ctx context.Context, id string) (string, error)
	ToJSON(ctx context.Context, id string) (string, error)
}
