// AngelaMos | 2026
// dto.go

package siteprofile

import (
	"net/url"
	"strconv"
	"strings"
)

type ImageURLs struct {
	HeroImage1URL    string `json:"hero_image_1_url"`
	HeroImage2URL    string `json:"hero_image_2_url"`
	GalleryImage1URL string `json:"gallery_image_1_url"`
	GalleryImage2URL string `json:"gallery_image_2_url"`
	GalleryImage3URL string `json:"gallery_image_3_url"`
	GalleryImage4URL string `json:"gallery_image_4_url"`
	GalleryImage5URL string `json:"gallery_image_5_url"`
	GalleryImage6URL string `json:"gallery_image_6_url"`
	GalleryImage7URL string `json:"gallery_image_7_url"`
	GalleryImage8URL string `json:"gallery_image_8_url"`
}

func newImageURLs(im *Images, toURL func(string) string) ImageURLs {
	var u ImageURLs
	dst := []*string{
		&u.HeroImage1URL,
		&u.HeroImage2URL,
		&u.GalleryImage1URL,
		&u.GalleryImage2URL,
		&u.GalleryImage3URL,
		&u.GalleryImage4URL,
		&u.GalleryImage5URL,
		&u.GalleryImage6URL,
		&u.GalleryImage7URL,
		&u.GalleryImage8URL,
	}
	for i, src := range im.slots() {
		*dst[i] = toURL(*src)
	}
	return u
}

type Response struct {
	Profile
	ImageURLs
}

// ContentFromValues reads the text and count fields. Missing text is empty.
// A count keeps its leading integer ("12 couples" is 12) and anything
// without one, or below zero, is 0.
func ContentFromValues(vals url.Values) Content {
	var c Content
	for key, dst := range c.textFields() {
		*dst = strings.TrimSpace(vals.Get(key))
	}
	c.SatisfiedCouplesCount = parseCount(vals.Get("satisfied_couples_count"))
	c.PortfolioProjectsCount = parseCount(vals.Get("portfolio_projects_count"))
	return c
}

func parseCount(raw string) int {
	s := strings.TrimSpace(raw)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 0 {
		return 0
	}
	return n
}
