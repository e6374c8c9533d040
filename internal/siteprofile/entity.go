// AngelaMos | 2026
// entity.go

package siteprofile

import (
	"time"
)

// ProfileID is the only row the site_profile table accepts.
const ProfileID = 1

type Content struct {
	HeroBadgeText          string `db:"hero_badge_text"          json:"hero_badge_text"          validate:"max=255"`
	HeroTitle              string `db:"hero_title"               json:"hero_title"               validate:"max=255"`
	HeroSubtitle           string `db:"hero_subtitle"            json:"hero_subtitle"            validate:"max=255"`
	HeroDescription        string `db:"hero_description"         json:"hero_description"         validate:"max=5000"`
	HeroCTAText            string `db:"hero_cta_text"            json:"hero_cta_text"            validate:"max=255"`
	TestimonialText        string `db:"testimonial_text"         json:"testimonial_text"         validate:"max=5000"`
	TestimonialAuthor      string `db:"testimonial_author"       json:"testimonial_author"       validate:"max=255"`
	AboutDescription       string `db:"about_description"        json:"about_description"        validate:"max=5000"`
	SatisfiedCouplesCount  int    `db:"satisfied_couples_count"  json:"satisfied_couples_count"  validate:"min=0"`
	PortfolioProjectsCount int    `db:"portfolio_projects_count" json:"portfolio_projects_count" validate:"min=0"`
	Service1Title          string `db:"service_1_title"          json:"service_1_title"          validate:"max=255"`
	Service2Title          string `db:"service_2_title"          json:"service_2_title"          validate:"max=255"`
	Service3Title          string `db:"service_3_title"          json:"service_3_title"          validate:"max=255"`
	ProcessStep1           string `db:"process_step_1"           json:"process_step_1"           validate:"max=1000"`
	ProcessStep2           string `db:"process_step_2"           json:"process_step_2"           validate:"max=1000"`
	ProcessStep3           string `db:"process_step_3"           json:"process_step_3"           validate:"max=1000"`
	ProcessStep4           string `db:"process_step_4"           json:"process_step_4"           validate:"max=1000"`
	ProcessStep5           string `db:"process_step_5"           json:"process_step_5"           validate:"max=1000"`
	ProcessDescription     string `db:"process_description"      json:"process_description"      validate:"max=5000"`
	AestheticText          string `db:"aesthetic_text"           json:"aesthetic_text"           validate:"max=5000"`
	GalleryCTAText         string `db:"gallery_cta_text"         json:"gallery_cta_text"         validate:"max=255"`
	BottomTitle            string `db:"bottom_title"             json:"bottom_title"             validate:"max=255"`
	BottomDescription      string `db:"bottom_description"       json:"bottom_description"       validate:"max=5000"`
}

func (c *Content) textFields() map[string]*string {
	return map[string]*string{
		"hero_badge_text":     &c.HeroBadgeText,
		"hero_title":          &c.HeroTitle,
		"hero_subtitle":       &c.HeroSubtitle,
		"hero_description":    &c.HeroDescription,
		"hero_cta_text":       &c.HeroCTAText,
		"testimonial_text":    &c.TestimonialText,
		"testimonial_author":  &c.TestimonialAuthor,
		"about_description":   &c.AboutDescription,
		"service_1_title":     &c.Service1Title,
		"service_2_title":     &c.Service2Title,
		"service_3_title":     &c.Service3Title,
		"process_step_1":      &c.ProcessStep1,
		"process_step_2":      &c.ProcessStep2,
		"process_step_3":      &c.ProcessStep3,
		"process_step_4":      &c.ProcessStep4,
		"process_step_5":      &c.ProcessStep5,
		"process_description": &c.ProcessDescription,
		"aesthetic_text":      &c.AestheticText,
		"gallery_cta_text":    &c.GalleryCTAText,
		"bottom_title":        &c.BottomTitle,
		"bottom_description":  &c.BottomDescription,
	}
}

// ImageFields lists the image columns in form and storage order.
var ImageFields = []string{
	"hero_image_1",
	"hero_image_2",
	"gallery_image_1",
	"gallery_image_2",
	"gallery_image_3",
	"gallery_image_4",
	"gallery_image_5",
	"gallery_image_6",
	"gallery_image_7",
	"gallery_image_8",
}

// Images holds relative upload paths. An empty string means no image.
type Images struct {
	HeroImage1    string `db:"hero_image_1"    json:"hero_image_1"`
	HeroImage2    string `db:"hero_image_2"    json:"hero_image_2"`
	GalleryImage1 string `db:"gallery_image_1" json:"gallery_image_1"`
	GalleryImage2 string `db:"gallery_image_2" json:"gallery_image_2"`
	GalleryImage3 string `db:"gallery_image_3" json:"gallery_image_3"`
	GalleryImage4 string `db:"gallery_image_4" json:"gallery_image_4"`
	GalleryImage5 string `db:"gallery_image_5" json:"gallery_image_5"`
	GalleryImage6 string `db:"gallery_image_6" json:"gallery_image_6"`
	GalleryImage7 string `db:"gallery_image_7" json:"gallery_image_7"`
	GalleryImage8 string `db:"gallery_image_8" json:"gallery_image_8"`
}

// slots is aligned with ImageFields.
func (im *Images) slots() []*string {
	return []*string{
		&im.HeroImage1,
		&im.HeroImage2,
		&im.GalleryImage1,
		&im.GalleryImage2,
		&im.GalleryImage3,
		&im.GalleryImage4,
		&im.GalleryImage5,
		&im.GalleryImage6,
		&im.GalleryImage7,
		&im.GalleryImage8,
	}
}

func (im *Images) Get(field string) string {
	for i, name := range ImageFields {
		if name == field {
			return *im.slots()[i]
		}
	}
	return ""
}

func (im *Images) Set(field, path string) {
	for i, name := range ImageFields {
		if name == field {
			*im.slots()[i] = path
			return
		}
	}
}

// Paths returns every non-empty image path.
func (im *Images) Paths() []string {
	var out []string
	for _, p := range im.slots() {
		if *p != "" {
			out = append(out, *p)
		}
	}
	return out
}

type Profile struct {
	ID int `db:"id" json:"id"`
	Content
	Images
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
