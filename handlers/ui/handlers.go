package ui

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
)

// PageData holds the data passed to the layout template.
type PageData struct {
	Title     string
	PageTitle string
	ActiveNav string
	Content   interface{}
}

func templatesDir() string {
	if dir := os.Getenv("TEMPLATES_DIR"); dir != "" {
		return dir
	}
	return filepath.Join("ui", "templates")
}

// renderPageTemplate renders a page template inside the base layout.
func renderPageTemplate(w http.ResponseWriter, pageName string, data PageData) {
	dir := templatesDir()
	baseLayout := filepath.Join(dir, "layout.html")
	pageFile := filepath.Join(dir, pageName)

	tmpl, err := template.ParseFiles(baseLayout, pageFile)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error parsing templates: %v", err), http.StatusInternalServerError)
		return
	}

	err = tmpl.ExecuteTemplate(w, "layout.html", data)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error executing template: %v", err), http.StatusInternalServerError)
	}
}

// FeedHandler serves the feed page.
func FeedHandler(w http.ResponseWriter, r *http.Request) {
	data := PageData{
		Title:     "Feed",
		PageTitle: "Latest Posts",
		ActiveNav: "feed",
	}
	renderPageTemplate(w, "feed.html", data)
}

// MarketHandler serves the marketplace page.
func MarketHandler(w http.ResponseWriter, r *http.Request) {
	data := PageData{
		Title:     "Marketplace",
		PageTitle: "Marketplace",
		ActiveNav: "market",
	}
	renderPageTemplate(w, "market.html", data)
}

// RoomsHandler serves the video rooms page.
func RoomsHandler(w http.ResponseWriter, r *http.Request) {
	data := PageData{
		Title:     "Video Rooms",
		PageTitle: "Video Rooms",
		ActiveNav: "rooms",
	}
	renderPageTemplate(w, "rooms.html", data)
}

// SignInHandler serves the sign-in page.
func SignInHandler(w http.ResponseWriter, r *http.Request) {
	data := PageData{
		Title:     "Sign In",
		PageTitle: "Sign In",
		ActiveNav: "sign-in",
	}
	renderPageTemplate(w, "sign_in.html", data)
}
