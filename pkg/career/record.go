/*
Package career holds the prepopulated career data store and the search and
lookup operations served by the API.

The store is loaded once at process start from a prepopulated file and is
immutable afterwards; every request is a plain read. Field aliases in the
source data (keyword vs title vs onetTitle, onetCode vs onetcode, wage
shapes) are resolved exactly once at load time so downstream code never
branches on alias presence.
*/
package career

import (
	"math"
	"net/url"
)

// Record is one occupation, with aliases resolved and derived match fields
// computed at load time.
type Record struct {
	// Key identifies the record for lookups and deduplication: the ONET
	// code when present, otherwise the match keyword.
	Key string `json:"key"`
	// Title is the display title shown on cards.
	Title string `json:"title"`
	// Keyword is the canonical match key the fuzzy matcher runs against.
	Keyword            string   `json:"keyword"`
	OnetCode           string   `json:"onetCode,omitempty"`
	Description        string   `json:"description"`
	EducationLevel     string   `json:"educationLevel,omitempty"`
	EducationCode      string   `json:"educationCode,omitempty"`
	MedianWage         *float64 `json:"medianWage"`
	Skills             []string `json:"skills"`
	Tasks              []string `json:"tasks"`
	AlternateTitles    []string `json:"alternateTitles"`
	RelatedOccupations []string `json:"relatedOccupations"`
	SourceURL          string   `json:"sourceUrl,omitempty"`
	CareerVideoURL     string   `json:"careerVideoUrl,omitempty"`
	DataSourceName     string   `json:"dataSourceName,omitempty"`

	// derived at load time, never recomputed per query
	stemTitle string
	normHay   string
}

// Summary is the shaped search result returned by Search.
type Summary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OnetCode    string `json:"onetCode"`
	DetailsURL  string `json:"detailsUrl"`
	SalaryURL   string `json:"salaryUrl"`
}

// NationalWages carries the single wage figure the app displays.
type NationalWages struct {
	Median float64 `json:"Median"`
}

// Wages mirrors the CareerOneStop wage envelope the frontend expects.
type Wages struct {
	National *NationalWages `json:"national"`
}

// Detail is the shaped record served by the details endpoints.
type Detail struct {
	OnetTitle       string   `json:"onetTitle"`
	OnetCode        string   `json:"onetCode"`
	OnetDescription string   `json:"onetDescription"`
	EducationLevel  string   `json:"educationLevel"`
	EducationCode   string   `json:"educationCode"`
	Skills          []string `json:"skills"`
	Tasks           []string `json:"tasks"`
	AlternateTitles []string `json:"alternateTitles"`
	Wages           Wages    `json:"wages"`
	CosVideoURL     string   `json:"cosVideoUrl"`
	DataSourceName  string   `json:"dataSourceName"`
	DataSourceURL   string   `json:"dataSourceUrl"`
}

// SalaryInfo pairs the median wage with the full record it came from.
type SalaryInfo struct {
	Median *float64 `json:"median"`
	Raw    Record   `json:"raw"`
}

const apiBase = "/api/careers/careeronestop"

// Summary shapes the record for search responses. Detail and salary links
// prefer the ONET code route and fall back to the keyword route for records
// without a code.
func (r Record) Summary() Summary {
	detailsURL := apiBase + "/details/" + url.PathEscape(r.Key)
	salaryURL := apiBase + "/salary/" + url.PathEscape(r.Key)
	if r.OnetCode != "" {
		detailsURL = apiBase + "/details/onet/" + url.PathEscape(r.OnetCode)
		salaryURL = apiBase + "/salary/" + url.PathEscape(r.OnetCode)
	}
	return Summary{
		ID:          r.Key,
		Title:       r.Title,
		Description: r.Description,
		OnetCode:    r.OnetCode,
		DetailsURL:  detailsURL,
		SalaryURL:   salaryURL,
	}
}

// Detail shapes the record for the details endpoints.
func (r Record) Detail() Detail {
	var wages Wages
	if r.MedianWage != nil {
		wages.National = &NationalWages{Median: *r.MedianWage}
	}
	return Detail{
		OnetTitle:       r.Title,
		OnetCode:        r.OnetCode,
		OnetDescription: r.Description,
		EducationLevel:  r.EducationLevel,
		EducationCode:   r.EducationCode,
		Skills:          emptyIfNil(r.Skills),
		Tasks:           emptyIfNil(r.Tasks),
		AlternateTitles: emptyIfNil(r.AlternateTitles),
		Wages:           wages,
		CosVideoURL:     r.CareerVideoURL,
		DataSourceName:  r.DataSourceName,
		DataSourceURL:   r.SourceURL,
	}
}

// rawRecord is the on-disk shape with every alias the data files have
// accumulated over time. It only exists between file read and normalization.
type rawRecord struct {
	Keyword            string    `json:"keyword" msgpack:"keyword"`
	Title              string    `json:"title" msgpack:"title"`
	OnetTitle          string    `json:"onetTitle" msgpack:"onetTitle"`
	OnetCode           string    `json:"onetCode" msgpack:"onetCode"`
	OnetCodeLower      string    `json:"onetcode" msgpack:"onetcode"`
	Description        string    `json:"description" msgpack:"description"`
	OnetDescription    string    `json:"onetDescription" msgpack:"onetDescription"`
	EducationLevel     string    `json:"educationLevel" msgpack:"educationLevel"`
	Education          string    `json:"education" msgpack:"education"`
	EducationCode      string    `json:"educationCode" msgpack:"educationCode"`
	MedianWage         *float64  `json:"medianWage" msgpack:"medianWage"`
	Wages              *rawWages `json:"wages" msgpack:"wages"`
	Skills             []string  `json:"skills" msgpack:"skills"`
	Tasks              []string  `json:"tasks" msgpack:"tasks"`
	AlternateTitles    []string  `json:"alternateTitles" msgpack:"alternateTitles"`
	RelatedOccupations []string  `json:"relatedOccupations" msgpack:"relatedOccupations"`
	SourceURL          string    `json:"sourceUrl" msgpack:"sourceUrl"`
	CareerVideoURL     string    `json:"careerVideoUrl" msgpack:"careerVideoUrl"`
	DataSource         string    `json:"dataSource" msgpack:"dataSource"`
	DataSourceName     string    `json:"dataSourceName" msgpack:"dataSourceName"`
}

type rawWages struct {
	National *rawNationalWages `json:"national" msgpack:"national"`
}

type rawNationalWages struct {
	Median *float64 `json:"Median" msgpack:"Median"`
}

// placeholderTitle is a scrape artifact present in older data files; it is
// treated the same as a missing title.
const placeholderTitle = "CareerOneStop"

// normalize resolves every alias into the canonical Record fields. It
// reports false when no usable title survives, in which case the record is
// dropped by the loader.
func (raw rawRecord) normalize() (Record, bool) {
	keyword := firstPresent(raw.Keyword, raw.Title, raw.OnetTitle)
	title := firstPresent(raw.OnetTitle, raw.Title, raw.Keyword)
	if keyword == "" || title == "" {
		return Record{}, false
	}

	code := raw.OnetCode
	if code == "" {
		code = raw.OnetCodeLower
	}

	key := code
	if key == "" {
		key = keyword
	}

	rec := Record{
		Key:                key,
		Title:              title,
		Keyword:            keyword,
		OnetCode:           code,
		Description:        firstPresent(raw.OnetDescription, raw.Description),
		EducationLevel:     firstPresent(raw.EducationLevel, raw.Education),
		EducationCode:      raw.EducationCode,
		MedianWage:         sanitizeWage(raw.medianWage()),
		Skills:             emptyIfNil(raw.Skills),
		Tasks:              emptyIfNil(raw.Tasks),
		AlternateTitles:    emptyIfNil(raw.AlternateTitles),
		RelatedOccupations: emptyIfNil(raw.RelatedOccupations),
		SourceURL:          raw.SourceURL,
		CareerVideoURL:     raw.CareerVideoURL,
		DataSourceName:     firstPresent(raw.DataSource, raw.DataSourceName),
	}
	return rec, true
}

// medianWage resolves the flat field against the nested wage envelope.
func (raw rawRecord) medianWage() *float64 {
	if raw.MedianWage != nil {
		return raw.MedianWage
	}
	if raw.Wages != nil && raw.Wages.National != nil {
		return raw.Wages.National.Median
	}
	return nil
}

// sanitizeWage treats negative or non-finite wages as unknown.
func sanitizeWage(w *float64) *float64 {
	if w == nil {
		return nil
	}
	if *w < 0 || math.IsNaN(*w) || math.IsInf(*w, 0) {
		return nil
	}
	v := *w
	return &v
}

// firstPresent returns the first value that is neither empty nor the
// scraper placeholder.
func firstPresent(values ...string) string {
	for _, v := range values {
		if v != "" && v != placeholderTitle {
			return v
		}
	}
	return ""
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
