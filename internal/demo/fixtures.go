package demo

import (
	"fmt"

	"github.com/govportal/portalctl/internal/dao"
	"github.com/govportal/portalctl/internal/model1"
)

func seed() map[string][]model1.Row {
	data := map[string][]model1.Row{
		dao.MenuRID.Table(): {
			{"id": 1, "title": "Home", "slug": "home", "parent": nil, "order": 1, "status": true},
			{"id": 2, "title": "About Us", "slug": "about", "parent": nil, "order": 2, "status": true},
			{"id": 3, "title": "Organization Structure", "slug": "structure", "parent": map[string]any{"id": 2, "title": "About Us"}, "order": 1, "status": true},
			{"id": 4, "title": "Notices", "slug": "notices", "parent": nil, "order": 3, "status": true},
			{"id": 5, "title": "Opportunities", "slug": "opportunities", "parent": nil, "order": 4, "status": true},
			{"id": 6, "title": "Gallery", "slug": "gallery", "parent": nil, "order": 5, "status": true},
			{"id": 7, "title": "Contact", "slug": "contact", "parent": nil, "order": 6, "status": false},
		},
		dao.SliderRID.Table(): {
			{"id": 1, "title": "Digital Services Week", "image": "uploads/sliders/digital-week.jpg", "caption": "Apply online for citizen services", "status": true},
			{"id": 2, "title": "Budget Hearing", "image": "uploads/sliders/budget.png", "caption": "", "status": true},
			{"id": 3, "title": "Flood Relief", "image": "uploads/sliders/relief.webp", "caption": "Relief distribution schedule", "status": false},
		},
		dao.GalleryCategoryRID.Table(): {
			{"id": 1, "name": "Events", "slug": "events", "cover": "uploads/gallery/events.jpg"},
			{"id": 2, "name": "Inspections", "slug": "inspections", "cover": "uploads/gallery/inspections.jpg"},
			{"id": 3, "name": "Press", "slug": "press", "cover": nil},
		},
		dao.FAQRID.Table(): {
			{"id": 1, "question": "How do I renew a permit?", "answer": "Submit the renewal form at the ward office.", "status": true},
			{"id": 2, "question": "Where are tenders published?", "answer": "Under Opportunities, every Monday.", "status": true},
			{"id": 3, "question": "Can I pay fees online?", "answer": "Yes, through the national payment gateway.", "status": true},
		},
		dao.SocialRID.Table(): {
			{"id": 1, "platform": "Facebook", "url": "https://facebook.com/portal", "icon": "uploads/icons/facebook.png"},
			{"id": 2, "platform": "YouTube", "url": "https://youtube.com/@portal", "icon": "uploads/icons/youtube.png"},
			{"id": 3, "platform": "X", "url": "https://x.com/portal", "icon": nil},
		},
		dao.SettingRID.Table(): {
			{"id": 1, "key": "site_title", "value": "Municipal Portal"},
			{"id": 2, "key": "logo", "value": "uploads/settings/logo.png"},
			{"id": 3, "key": "contact_email", "value": "info@portal.gov.np"},
			{"id": 4, "key": "office_hours", "value": "Sun-Fri 10:00-17:00"},
		},
	}

	images := make([]model1.Row, 0, 14)
	media := []string{"jpg", "png", "mp4", "jpeg", "ogg", "mp3", "gif"}
	for i := 1; i <= 14; i++ {
		cat := data[dao.GalleryCategoryRID.Table()][i%3]
		images = append(images, model1.Row{
			"id":       i,
			"title":    fmt.Sprintf("Gallery item %d", i),
			"file":     fmt.Sprintf("uploads/gallery/item-%02d.%s", i, media[i%len(media)]),
			"category": map[string]any{"id": cat["id"], "name": cat["name"]},
		})
	}
	data[dao.GalleryImageRID.Table()] = images

	notices := make([]model1.Row, 0, 25)
	for i := 1; i <= 25; i++ {
		ext := "pdf"
		if i%4 == 0 {
			ext = "docx"
		}
		notices = append(notices, model1.Row{
			"id":           i,
			"title":        fmt.Sprintf("Public notice %03d", i),
			"published_at": fmt.Sprintf("2025-%02d-%02d", 1+i%12, 1+i%28),
			"file":         fmt.Sprintf("uploads/notices/notice-%03d.%s", i, ext),
			"views":        i * 17 % 50,
		})
	}
	data[dao.NoticeRID.Table()] = notices

	data[dao.OpportunityRID.Table()] = []model1.Row{
		{"id": 1, "title": "Civil Engineer (Contract)", "deadline": "2025-11-30", "document": "uploads/jobs/civil-engineer.pdf", "open": true},
		{"id": 2, "title": "Road Maintenance Tender", "deadline": "2025-12-15", "document": "uploads/jobs/road-tender.docx", "open": true},
		{"id": 3, "title": "IT Officer", "deadline": "2025-10-01", "document": "uploads/jobs/it-officer.doc", "open": false},
		{"id": 4, "title": "Health Volunteer Orientation", "deadline": "", "document": "uploads/jobs/orientation.mp4", "open": true},
	}

	return data
}
