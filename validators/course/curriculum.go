package courseValidator

import (
	"coursestore/middleware"
	courseModels "coursestore/models/course"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ReplaceCurriculum validates the whole-document curriculum payload.
// Structural consistency against the stored id sets is checked in the
// controller, where the transaction runs.
func ReplaceCurriculum() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		tree := new(courseModels.CurriculumTree)
		if err := c.BodyParser(tree); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid curriculum payload!", nil)
		}

		errors := make(map[string]string)

		for i := range tree.Sections {
			tree.Sections[i].Title = strings.TrimSpace(tree.Sections[i].Title)
			if tree.Sections[i].Title == "" {
				errors["sections"] = "Every section needs a title!"
			}
			for j := range tree.Sections[i].Lectures {
				tree.Sections[i].Lectures[j].Title = strings.TrimSpace(tree.Sections[i].Lectures[j].Title)
				if tree.Sections[i].Lectures[j].Title == "" {
					errors["lectures"] = "Every lecture needs a title!"
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedTree", tree)
		return c.Next()
	}
}

// SetQuiz validates a section quiz replacement payload.
func SetQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sectionID, err := strconv.Atoi(strings.TrimSpace(c.Params("section_id")))
		if err != nil || sectionID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Section ID!", nil)
		}

		reqData := new(struct {
			Questions []courseModels.QuestionNode `json:"questions"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz payload!", nil)
		}

		errors := make(map[string]string)

		for i, q := range reqData.Questions {
			text := strings.TrimSpace(q.Text)
			if text == "" {
				errors["questions"] = "Every question needs text!"
			}
			reqData.Questions[i].Text = text

			if len(q.Options) < 2 {
				errors["options"] = "Every question needs at least 2 options!"
			}
			if q.CorrectOption == nil || *q.CorrectOption < 0 || *q.CorrectOption >= len(q.Options) {
				errors["correct_option"] = "Correct option must index into the options list!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("sectionID", sectionID)
		c.Locals("validatedQuestions", reqData.Questions)
		return c.Next()
	}
}

// SectionID validates a section id path parameter.
func SectionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sectionID, err := strconv.Atoi(strings.TrimSpace(c.Params("section_id")))
		if err != nil || sectionID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Section ID!", nil)
		}

		c.Locals("sectionID", sectionID)
		return c.Next()
	}
}

// LectureID validates a lecture id path parameter.
func LectureID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lectureID, err := strconv.Atoi(strings.TrimSpace(c.Params("lecture_id")))
		if err != nil || lectureID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lecture ID!", nil)
		}

		c.Locals("lectureID", lectureID)
		return c.Next()
	}
}
