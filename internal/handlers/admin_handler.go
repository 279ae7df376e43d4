// File: internal/handlers/admin_handler.go
package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"literarychat/internal/auth"
	"literarychat/internal/domain"
	"literarychat/internal/middleware"
	"literarychat/internal/services"
)

const adminTokenTTL = 12 * time.Hour

// AdminHandler serves the administrative API: login, catalog management,
// and bulk indexing.
type AdminHandler struct {
	libraryService  *services.LibraryService
	indexingService *services.IndexingService
	passwordHash    string
	secretKey       []byte
}

func NewAdminHandler(libraryService *services.LibraryService, indexingService *services.IndexingService, passwordHash string, secretKey []byte) *AdminHandler {
	return &AdminHandler{
		libraryService:  libraryService,
		indexingService: indexingService,
		passwordHash:    passwordHash,
		secretKey:       secretKey,
	}
}

// Login checks the admin password and issues the admin cookie.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	password := r.PostFormValue("password")
	if h.passwordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(password)) != nil {
		log.Printf("[AdminHandler] Failed admin login from %s", r.RemoteAddr)
		writeError(w, "Invalid password", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateAdminToken(h.secretKey, adminTokenTTL)
	if err != nil {
		log.Printf("[AdminHandler] Failed to sign admin token: %v", err)
		writeError(w, "Login failed", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(adminTokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// ListBooks returns every book with its indexing state.
func (h *AdminHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.libraryService.ListAllBooks(r.Context())
	if err != nil {
		writeError(w, "Failed to retrieve books", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"books": books})
}

type createBookRequest struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear *int   `json:"publication_year"`
	Description     string `json:"description"`
	TextFilePath    string `json:"text_file_path"`
	CoverImagePath  string `json:"cover_image_path"`
}

// CreateBook registers a new, unindexed book.
func (h *AdminHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	book, err := h.libraryService.CreateBook(r.Context(), &domain.Book{
		Title:           req.Title,
		Author:          req.Author,
		PublicationYear: req.PublicationYear,
		Description:     req.Description,
		TextFilePath:    req.TextFilePath,
		CoverImagePath:  req.CoverImagePath,
	})
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

type createCharacterRequest struct {
	BookID            uint   `json:"book_id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	PersonalityTraits string `json:"personality_traits"`
	AvatarPath        string `json:"avatar_path"`
	Voice             string `json:"voice"`
}

// CreateCharacter attaches a character to a book.
func (h *AdminHandler) CreateCharacter(w http.ResponseWriter, r *http.Request) {
	var req createCharacterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	character, err := h.libraryService.CreateCharacter(r.Context(), &domain.Character{
		BookID:            req.BookID,
		Name:              req.Name,
		Description:       req.Description,
		PersonalityTraits: req.PersonalityTraits,
		AvatarPath:        req.AvatarPath,
		Voice:             req.Voice,
	})
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, character)
}

type processBooksRequest struct {
	BookIDs []uint `json:"book_ids"`
}

// ProcessBooks runs the indexing pipeline over the selected books. One
// failing book does not abort the rest; the response reports both counts.
func (h *AdminHandler) ProcessBooks(w http.ResponseWriter, r *http.Request) {
	var req processBooksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.BookIDs) == 0 {
		writeError(w, "No books selected", http.StatusBadRequest)
		return
	}

	report := h.indexingService.ProcessBooks(r.Context(), req.BookIDs)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"processed": report.Processed,
		"errors":    report.Errors,
	})
}
