// Package site holds the documentation site's configuration: metadata,
// docs options, analytics keys and theme settings. It is loaded once and
// passed by value; nothing in it is mutated after Load.
package site

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dgallion1/docnav/internal/nav"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Title                 string `yaml:"title" json:"title"`
	Tagline               string `yaml:"tagline" json:"tagline,omitempty"`
	URL                   string `yaml:"url" json:"url"`
	BaseURL               string `yaml:"baseUrl" json:"base_url"`
	Favicon               string `yaml:"favicon" json:"favicon,omitempty"`
	OrganizationName      string `yaml:"organizationName" json:"organization_name,omitempty"`
	ProjectName           string `yaml:"projectName" json:"project_name,omitempty"`
	OnBrokenLinks         string `yaml:"onBrokenLinks" json:"on_broken_links"`
	OnBrokenMarkdownLinks string `yaml:"onBrokenMarkdownLinks" json:"on_broken_markdown_links"`

	Docs      DocsConfig      `yaml:"docs" json:"docs"`
	Analytics AnalyticsConfig `yaml:"analytics" json:"analytics"`
	APIDocs   APIDocsConfig   `yaml:"apiDocs" json:"api_docs"`
	Theme     ThemeConfig     `yaml:"theme" json:"theme"`
}

type DocsConfig struct {
	RouteBasePath        string `yaml:"routeBasePath" json:"route_base_path"`
	SidebarPath          string `yaml:"sidebarPath" json:"sidebar_path"`
	EditURL              string `yaml:"editUrl" json:"edit_url,omitempty"`
	ShowLastUpdateAuthor bool   `yaml:"showLastUpdateAuthor" json:"show_last_update_author"`
	ShowLastUpdateTime   bool   `yaml:"showLastUpdateTime" json:"show_last_update_time"`
}

type AnalyticsConfig struct {
	GTag    *GTagConfig    `yaml:"gtag" json:"gtag,omitempty"`
	Segment *SegmentConfig `yaml:"segment" json:"segment,omitempty"`
}

type GTagConfig struct {
	TrackingID  string `yaml:"trackingID" json:"tracking_id"`
	AnonymizeIP bool   `yaml:"anonymizeIP" json:"anonymize_ip"`
}

type SegmentConfig struct {
	APIKey string `yaml:"apiKey" json:"api_key"`
}

// APIDocsConfig wires the API reference renderers. docnav only passes it
// through to the front end.
type APIDocsConfig struct {
	OpenAPI  []OpenAPISpec   `yaml:"openapi" json:"openapi,omitempty"`
	Protobuf *ProtobufConfig `yaml:"protobuf" json:"protobuf,omitempty"`
}

type OpenAPISpec struct {
	Spec         string `yaml:"spec" json:"spec"`
	Route        string `yaml:"route" json:"route"`
	PrimaryColor string `yaml:"primaryColor" json:"primary_color,omitempty"`
}

type ProtobufConfig struct {
	FileDescriptorsPath string `yaml:"fileDescriptorsPath" json:"file_descriptors_path"`
	ProtoDocsPath       string `yaml:"protoDocsPath" json:"proto_docs_path"`
	SidebarPath         string `yaml:"sidebarPath" json:"sidebar_path,omitempty"`
}

type ThemeConfig struct {
	ColorMode       ColorMode        `yaml:"colorMode" json:"color_mode"`
	AnnouncementBar *AnnouncementBar `yaml:"announcementBar" json:"announcement_bar,omitempty"`
	Navbar          Navbar           `yaml:"navbar" json:"navbar"`
	Footer          Footer           `yaml:"footer" json:"footer"`
	Prism           Prism            `yaml:"prism" json:"prism"`
	CustomCSS       string           `yaml:"customCss" json:"custom_css,omitempty"`
}

type ColorMode struct {
	DefaultMode               string `yaml:"defaultMode" json:"default_mode"`
	RespectPrefersColorScheme bool   `yaml:"respectPrefersColorScheme" json:"respect_prefers_color_scheme"`
}

type AnnouncementBar struct {
	ID              string `yaml:"id" json:"id"`
	Content         string `yaml:"content" json:"content"`
	BackgroundColor string `yaml:"backgroundColor" json:"background_color,omitempty"`
	TextColor       string `yaml:"textColor" json:"text_color,omitempty"`
}

type Navbar struct {
	Title        string       `yaml:"title" json:"title"`
	HideOnScroll bool         `yaml:"hideOnScroll" json:"hide_on_scroll"`
	Logo         *Logo        `yaml:"logo" json:"logo,omitempty"`
	Items        []NavbarItem `yaml:"items" json:"items"`
}

type Logo struct {
	Alt  string `yaml:"alt" json:"alt"`
	Src  string `yaml:"src" json:"src"`
	Href string `yaml:"href" json:"href,omitempty"`
}

// NavbarItem is a top bar entry: an internal route (To), an external link
// (Href), or a dropdown of further items.
type NavbarItem struct {
	Type           string       `yaml:"type" json:"type,omitempty"`
	Label          string       `yaml:"label" json:"label,omitempty"`
	To             string       `yaml:"to" json:"to,omitempty"`
	Href           string       `yaml:"href" json:"href,omitempty"`
	Position       string       `yaml:"position" json:"position,omitempty"`
	ClassName      string       `yaml:"className" json:"class_name,omitempty"`
	ActiveBasePath string       `yaml:"activeBasePath" json:"active_base_path,omitempty"`
	Items          []NavbarItem `yaml:"items" json:"items,omitempty"`
}

type Footer struct {
	Style     string       `yaml:"style" json:"style"`
	Links     []NavbarItem `yaml:"links" json:"links"`
	Copyright string       `yaml:"copyright" json:"copyright"`
}

type Prism struct {
	Theme               string   `yaml:"theme" json:"theme,omitempty"`
	DarkTheme           string   `yaml:"darkTheme" json:"dark_theme,omitempty"`
	AdditionalLanguages []string `yaml:"additionalLanguages" json:"additional_languages,omitempty"`
}

// Load reads a site configuration file, applies defaults and validates it.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read site config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a site configuration document.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse site config: %w", err)
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = "/"
	}
	if c.OnBrokenLinks == "" {
		c.OnBrokenLinks = string(nav.Throw)
	}
	if c.OnBrokenMarkdownLinks == "" {
		c.OnBrokenMarkdownLinks = string(nav.Warn)
	}
	if c.Docs.RouteBasePath == "" {
		c.Docs.RouteBasePath = "docs"
	}
	if c.Docs.SidebarPath == "" {
		c.Docs.SidebarPath = "sidebars.yaml"
	}
	if c.Theme.ColorMode.DefaultMode == "" {
		c.Theme.ColorMode.DefaultMode = "light"
	}
	c.Theme.Footer.Copyright = strings.ReplaceAll(c.Theme.Footer.Copyright, "{year}", fmt.Sprint(time.Now().Year()))
	return c
}

// Validate checks the fields other components depend on.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("site title is required")
	}
	if c.URL != "" {
		u, err := url.Parse(c.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("site url %q must be absolute", c.URL)
		}
	}
	if !strings.HasPrefix(c.BaseURL, "/") || !strings.HasSuffix(c.BaseURL, "/") {
		return fmt.Errorf("baseUrl %q must start and end with /", c.BaseURL)
	}
	if _, err := nav.ParseStrictness(c.OnBrokenLinks); err != nil {
		return fmt.Errorf("onBrokenLinks: %w", err)
	}
	if _, err := nav.ParseStrictness(c.OnBrokenMarkdownLinks); err != nil {
		return fmt.Errorf("onBrokenMarkdownLinks: %w", err)
	}
	switch c.Theme.ColorMode.DefaultMode {
	case "light", "dark":
	default:
		return fmt.Errorf("colorMode.defaultMode %q must be light or dark", c.Theme.ColorMode.DefaultMode)
	}
	return nil
}

// BrokenRefs is the navigation strictness implied by onBrokenLinks.
func (c Config) BrokenRefs() nav.Strictness {
	s, err := nav.ParseStrictness(c.OnBrokenLinks)
	if err != nil {
		return nav.Throw
	}
	return s
}

// DocsRoot is the URL path under which documents are served, with a
// trailing slash, e.g. "/" or "/docs/".
func (c Config) DocsRoot() string {
	route := strings.Trim(c.Docs.RouteBasePath, "/")
	if route == "" {
		return c.BaseURL
	}
	return c.BaseURL + route + "/"
}

// IndexPrefix is the URL prefix of generated category index pages.
func (c Config) IndexPrefix() string {
	return c.DocsRoot() + "category/"
}
