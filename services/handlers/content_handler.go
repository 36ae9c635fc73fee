package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/signa-learn/signa_api/dto"
	"github.com/signa-learn/signa_api/shared"
)

type ContentHandler struct {
	contentSvc ContentServiceInterface
	mediaSvc   MediaServiceInterface
	users      UserLoader
}

func NewContentHandler(contentSvc ContentServiceInterface, mediaSvc MediaServiceInterface, users UserLoader) *ContentHandler {
	return &ContentHandler{
		contentSvc: contentSvc,
		mediaSvc:   mediaSvc,
		users:      users,
	}
}

// @Summary List Sections
// @Description List sections and courses with the user's lock and progress overlay
// @Tags content
// @Accept json
// @Produce json
// @Param userId query string true "User ID"
// @Success 200 {object} shared.Response{data=dto.SectionListResponse}
// @Router /api/v1/sections [get]
func (h *ContentHandler) ListSections(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return shared.NewBadRequestError(nil, "userId is required")
	}

	user, err := h.users.GetUser(userID)
	if err != nil {
		return err
	}

	sections, err := h.contentSvc.GetSectionsForUser(user)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", sections)
}

// @Summary List Words
// @Description List dictionary words, optionally filtered by language
// @Tags words
// @Accept json
// @Produce json
// @Param language query string false "Language filter"
// @Success 200 {object} shared.Response{data=dto.WordListResponse}
// @Router /api/v1/words [get]
func (h *ContentHandler) ListWords(c *fiber.Ctx) error {
	language := c.Query("language")

	words, err := h.contentSvc.ListWords(language)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", words)
}

// @Summary Get Word
// @Description Fetch a single dictionary word
// @Tags words
// @Accept json
// @Produce json
// @Param wordId path string true "Word ID"
// @Success 200 {object} shared.Response{data=dto.WordResponse}
// @Router /api/v1/words/{wordId} [get]
func (h *ContentHandler) GetWord(c *fiber.Ctx) error {
	wordID := c.Params("wordId")

	word, err := h.contentSvc.GetWord(wordID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", word)
}

// @Summary Create Word
// @Description Add a word to the sign dictionary
// @Tags words
// @Accept json
// @Produce json
// @Param createRequest body dto.CreateWordRequest true "Word payload"
// @Success 201 {object} shared.Response{data=dto.WordResponse}
// @Router /api/v1/words [post]
func (h *ContentHandler) CreateWord(c *fiber.Ctx) error {
	var req dto.CreateWordRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	word, err := h.contentSvc.CreateWord(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Word created", word)
}

// @Summary Delete Word
// @Description Remove a word from the sign dictionary
// @Tags words
// @Accept json
// @Produce json
// @Param wordId path string true "Word ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/words/{wordId} [delete]
func (h *ContentHandler) DeleteWord(c *fiber.Ctx) error {
	wordID := c.Params("wordId")

	if err := h.contentSvc.DeleteWord(wordID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Word deleted", nil)
}

// @Summary Upload Word Video
// @Description Upload the sign video for a word
// @Tags words
// @Accept multipart/form-data
// @Produce json
// @Param wordId path string true "Word ID"
// @Param video formData file true "Video file (mp4, mov, webm)"
// @Success 200 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/words/{wordId}/video [post]
func (h *ContentHandler) UploadWordVideo(c *fiber.Ctx) error {
	wordID := c.Params("wordId")

	file, err := c.FormFile("video")
	if err != nil {
		return shared.NewBadRequestError(err, "video file is required")
	}

	result, err := h.mediaSvc.UploadWordVideo(wordID, file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Video uploaded", result)
}

// @Summary Upload Word Thumbnail
// @Description Upload the thumbnail image for a word
// @Tags words
// @Accept multipart/form-data
// @Produce json
// @Param wordId path string true "Word ID"
// @Param thumbnail formData file true "Image file (png, jpg, webp)"
// @Success 200 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/words/{wordId}/thumbnail [post]
func (h *ContentHandler) UploadWordThumbnail(c *fiber.Ctx) error {
	wordID := c.Params("wordId")

	file, err := c.FormFile("thumbnail")
	if err != nil {
		return shared.NewBadRequestError(err, "thumbnail file is required")
	}

	result, err := h.mediaSvc.UploadWordThumbnail(wordID, file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Thumbnail uploaded", result)
}
