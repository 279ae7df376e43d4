// File: internal/handlers/page_handlers.go
package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"literarychat/internal/domain"
	"literarychat/internal/middleware"
	bookrepo "literarychat/internal/repository/book"
	characterrepo "literarychat/internal/repository/character"
	"literarychat/internal/services"
)

// TemplatesDir locates the page templates. Tests point it at the source
// tree.
var TemplatesDir = "web/templates"

// Template cache to avoid parsing templates on every request.
var (
	templateCache     map[string]*template.Template
	templateCacheOnce sync.Once
)

func loadTemplateCache() {
	templateCache = make(map[string]*template.Template)

	templates := []string{"home.html", "book_detail.html", "chat.html", "admin_login.html", "admin.html", "error.html"}

	for _, tmpl := range templates {
		ts, err := template.New(tmpl).ParseFiles(TemplatesDir + "/layout.html")
		if err != nil {
			log.Fatalf("Error parsing layout for %s: %v", tmpl, err)
		}
		ts, err = ts.ParseFiles(TemplatesDir + "/" + tmpl)
		if err != nil {
			log.Fatalf("Error parsing %s: %v", tmpl, err)
		}
		templateCache[tmpl] = ts
	}
}

func renderTemplate(w http.ResponseWriter, status int, tmpl string, data map[string]interface{}) {
	templateCacheOnce.Do(loadTemplateCache)
	addSecurityHeaders(w)

	if data == nil {
		data = make(map[string]interface{})
	}

	t, ok := templateCache[tmpl]
	if !ok {
		log.Printf("Template %s not found in cache", tmpl)
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		log.Printf("Template render error for %s: %v", tmpl, err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func addSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
}

// markdown renders character replies. Raw HTML in model output stays
// escaped.
var markdown = goldmark.New(goldmark.WithRendererOptions(gmhtml.WithHardWraps()))

func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		log.Printf("Markdown render error: %v", err)
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String())
}

type bookView struct {
	ID              uint
	Title           string
	Author          string
	PublicationYear *int
	Description     string
	CoverURL        string
}

type characterView struct {
	ID          uint
	Name        string
	Description string
	AvatarURL   string
}

type messageView struct {
	Role    string
	Content string
	HTML    template.HTML
}

func newBookView(b *domain.Book) bookView {
	return bookView{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		PublicationYear: b.PublicationYear,
		Description:     b.Description,
		CoverURL:        services.MediaURL(b.CoverImagePath),
	}
}

func newCharacterView(c *domain.Character) characterView {
	return characterView{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		AvatarURL:   services.MediaURL(c.AvatarPath),
	}
}

func newMessageView(m *domain.Message) messageView {
	view := messageView{Role: m.Role, Content: m.Content}
	if m.Role == domain.RoleCharacter {
		view.HTML = renderMarkdown(m.Content)
	}
	return view
}

// PageHandler renders the HTML pages.
type PageHandler struct {
	libraryService *services.LibraryService
	chatService    *services.ChatService
}

func NewPageHandler(libraryService *services.LibraryService, chatService *services.ChatService) *PageHandler {
	return &PageHandler{
		libraryService: libraryService,
		chatService:    chatService,
	}
}

// ShowHomePage lists the indexed books.
func (h *PageHandler) ShowHomePage(w http.ResponseWriter, r *http.Request) {
	books, err := h.libraryService.ListIndexedBooks(r.Context())
	if err != nil {
		h.ShowErrorPage(w, http.StatusInternalServerError, "Something went wrong", "We could not load the library. Please try again.")
		return
	}

	views := make([]bookView, 0, len(books))
	for i := range books {
		views = append(views, newBookView(&books[i]))
	}
	renderTemplate(w, http.StatusOK, "home.html", map[string]interface{}{"Books": views})
}

// ShowBookPage lists a book's characters. Books that are missing or not
// indexed yet both read as not found.
func (h *PageHandler) ShowBookPage(w http.ResponseWriter, r *http.Request) {
	bookID, err := parseUintVar(r, "id")
	if err != nil {
		h.ShowNotFoundPage(w)
		return
	}

	book, characters, err := h.libraryService.GetIndexedBook(r.Context(), bookID)
	if errors.Is(err, bookrepo.ErrBookNotFound) {
		h.ShowNotFoundPage(w)
		return
	}
	if err != nil {
		h.ShowErrorPage(w, http.StatusInternalServerError, "Something went wrong", "We could not load this book. Please try again.")
		return
	}

	views := make([]characterView, 0, len(characters))
	for i := range characters {
		views = append(views, newCharacterView(&characters[i]))
	}
	renderTemplate(w, http.StatusOK, "book_detail.html", map[string]interface{}{
		"Book":       newBookView(book),
		"Characters": views,
	})
}

// ShowChatPage opens (or resumes) the session's conversation with a
// character.
func (h *PageHandler) ShowChatPage(w http.ResponseWriter, r *http.Request) {
	characterID, err := parseUintVar(r, "id")
	if err != nil {
		h.ShowNotFoundPage(w)
		return
	}

	session := middleware.SessionID(r.Context())
	character, conversation, messages, err := h.chatService.StartConversation(r.Context(), characterID, session)
	if errors.Is(err, characterrepo.ErrCharacterNotFound) {
		h.ShowNotFoundPage(w)
		return
	}
	if err != nil {
		h.ShowErrorPage(w, http.StatusInternalServerError, "Something went wrong", "We could not open this conversation. Please try again.")
		return
	}

	views := make([]messageView, 0, len(messages))
	for i := range messages {
		views = append(views, newMessageView(&messages[i]))
	}
	renderTemplate(w, http.StatusOK, "chat.html", map[string]interface{}{
		"Character":      newCharacterView(character),
		"Book":           newBookView(&character.Book),
		"ConversationID": conversation.ID,
		"Messages":       views,
	})
}

// ShowAdminLoginPage renders the admin password prompt.
func (h *PageHandler) ShowAdminLoginPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, http.StatusOK, "admin_login.html", nil)
}

// ShowAdminPage renders the admin panel.
func (h *PageHandler) ShowAdminPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, http.StatusOK, "admin.html", map[string]interface{}{
		"Voices": domain.Voices,
	})
}

func (h *PageHandler) ShowErrorPage(w http.ResponseWriter, status int, message, description string) {
	renderTemplate(w, status, "error.html", map[string]interface{}{
		"Code":        status,
		"Message":     message,
		"Description": description,
	})
}

func (h *PageHandler) ShowNotFoundPage(w http.ResponseWriter) {
	h.ShowErrorPage(w, http.StatusNotFound, "Page not found", "The page you are looking for does not exist.")
}

func parseUintVar(r *http.Request, name string) (uint, error) {
	value, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}
