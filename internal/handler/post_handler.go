package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"connections/internal/models"
)

type CreatePostRequest struct {
	Content *string            `json:"content"`
	Media   []PostMediaRequest `json:"media" validate:"omitempty,dive"`
}

type PostMediaRequest struct {
	URL  string `json:"url" validate:"required,url"`
	Type string `json:"type" validate:"required,oneof=image video audio"`
}

type ReactionRequest struct {
	ReactionType string `json:"reaction_type"`
}

type ReactionResponse struct {
	Message      string  `json:"message"`
	ReactionType *string `json:"reaction_type"`
	LikesCount   int     `json:"likesCount"`
	TotalCount   int     `json:"totalCount"`
}

type UploadResponse struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

func (h *Handlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.GetFeed(r.Context(), viewerFrom(r))
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	if userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные медиа", http.StatusBadRequest)
		return
	}

	media := make([]models.PostMedia, 0, len(req.Media))
	for i, m := range req.Media {
		media = append(media, models.PostMedia{
			URL:       m.URL,
			MediaType: m.Type,
			SortOrder: i,
		})
	}

	post, err := h.PostService.CreatePost(r.Context(), userID, req.Content, media)
	if err != nil {
		if strings.Contains(err.Error(), "должен содержать") {
			WriteError(w, "Пост должен содержать текст или медиа", http.StatusBadRequest)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	posts, err := h.PostService.GetUserPosts(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) ReactToPost(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	if userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["postId"]

	// пустое тело равнозначно {"reaction_type": "like"}
	var req ReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	counts, err := h.ReactionService.ReactToPost(r.Context(), postID, userID, req.ReactionType)
	if err != nil {
		if strings.Contains(err.Error(), "недопустимый тип реакции") {
			WriteError(w, err.Error(), http.StatusBadRequest)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeSuccess(w, ReactionResponse{
		Message:      "Реакция обновлена",
		ReactionType: counts.ReactionType,
		LikesCount:   counts.LikesCount,
		TotalCount:   counts.TotalCount,
	}, http.StatusOK)
}

func (h *Handlers) RemovePostReaction(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	if userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["postId"]

	counts, err := h.ReactionService.RemovePostReaction(r.Context(), postID, userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeSuccess(w, ReactionResponse{
		Message:    "Реакция удалена",
		LikesCount: counts.LikesCount,
		TotalCount: counts.TotalCount,
	}, http.StatusOK)
}

// LikePost keeps the older like endpoint alive, it writes through the
// reactions table with the fixed "like" type.
func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	if userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["postId"]

	counts, err := h.ReactionService.ReactToPost(r.Context(), postID, userID, "like")
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message":    "Лайк поставлен",
		"likesCount": counts.LikesCount,
	}, http.StatusOK)
}

func (h *Handlers) UnlikePost(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	if userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["postId"]

	counts, err := h.ReactionService.RemovePostReaction(r.Context(), postID, userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message":    "Лайк снят",
		"likesCount": counts.LikesCount,
	}, http.StatusOK)
}

func (h *Handlers) GetComments(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	comments, err := h.PostService.GetComments(r.Context(), postID, viewerFrom(r))
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeSuccess(w, comments, http.StatusOK)
}

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	if userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["postId"]

	var req struct {
		Content string `json:"content" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Комментарий не может быть пустым", http.StatusBadRequest)
		return
	}

	comment, err := h.PostService.AddComment(r.Context(), postID, userID, req.Content)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пост не найден", http.StatusNotFound)
		} else if strings.Contains(err.Error(), "не может быть пустым") {
			WriteError(w, "Комментарий не может быть пустым", http.StatusBadRequest)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeSuccess(w, comment, http.StatusCreated)
}

func (h *Handlers) ReactToComment(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	if userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	commentID := mux.Vars(r)["commentId"]

	var req ReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	likes, err := h.ReactionService.ReactToComment(r.Context(), commentID, userID, req.ReactionType)
	if err != nil {
		if strings.Contains(err.Error(), "недопустимый тип реакции") {
			WriteError(w, err.Error(), http.StatusBadRequest)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message":    "Реакция обновлена",
		"likesCount": likes,
	}, http.StatusOK)
}

func (h *Handlers) RemoveCommentReaction(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	if userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	commentID := mux.Vars(r)["commentId"]

	likes, err := h.ReactionService.RemoveCommentReaction(r.Context(), commentID, userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message":    "Реакция удалена",
		"likesCount": likes,
	}, http.StatusOK)
}

func (h *Handlers) SharePost(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	if userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["postId"]

	var req struct {
		SharedContent *string `json:"shared_content"`
	}

	// body is optional for a bare repost
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	share, err := h.PostService.SharePost(r.Context(), postID, userID, req.SharedContent)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пост не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeSuccess(w, share, http.StatusCreated)
}

func (h *Handlers) SavePost(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	if userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["postId"]

	if err := h.PostService.SavePost(r.Context(), postID, userID); err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пост не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeSuccess(w, MessageResponse{Message: "Пост сохранён"}, http.StatusOK)
}

func (h *Handlers) UnsavePost(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	if userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["postId"]

	if err := h.PostService.UnsavePost(r.Context(), postID, userID); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeSuccess(w, MessageResponse{Message: "Пост удалён из сохранённых"}, http.StatusOK)
}

func (h *Handlers) UploadMedia(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	if userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	// setting the size limit from the config
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			WriteError(w, fmt.Sprintf("Файл слишком большой (макс. %d MB)",
				h.Cfg.MaxUploadSize/(1024*1024)), http.StatusBadRequest)
		} else {
			WriteError(w, "Ошибка при обработке файла", http.StatusBadRequest)
		}
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, "Не удалось получить файл", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")

	url, mediaType, err := h.PostService.UploadMedia(r.Context(), userID, header.Filename, contentType, file, header.Size)
	if err != nil {
		if strings.Contains(err.Error(), "неподдерживаемый тип") {
			WriteError(w, "Неподдерживаемый тип файла. Разрешены: изображения, видео и аудио", http.StatusBadRequest)
		} else if strings.Contains(err.Error(), "слишком большой") {
			WriteError(w, err.Error(), http.StatusBadRequest)
		} else {
			WriteError(w, "Ошибка загрузки файла", http.StatusInternalServerError)
		}
		return
	}

	writeSuccess(w, UploadResponse{URL: url, Type: mediaType}, http.StatusCreated)
}
