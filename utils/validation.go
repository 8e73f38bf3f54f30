package utils

import (
	"regexp"
	"strings"

	"github.com/true-social/api-go/models"
)

const MaxBioLength = 250

var (
	emailPattern   = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	phonePattern   = regexp.MustCompile(`^[7-9][0-9]{9}$`)
	websitePattern = regexp.MustCompile(`^https?://\S+$`)
)

// ValidatePostInput checks post text and category, collecting every violated
// field so the caller gets all problems in one response.
func ValidatePostInput(text, category string) map[string]string {
	fields := map[string]string{}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		fields["postText"] = "Post text can't be an empty string."
	} else if len(trimmed) > models.MaxPostTextLength {
		fields["postText"] = "Post text exceeds 500 characters limit"
	}
	if !models.IsValidCategory(category) {
		fields["postCategory"] = "Post category must be one of: " + strings.Join(models.PostCategories, ", ")
	}
	return fields
}

// ValidatePostText is the text-only variant used when updating a post.
func ValidatePostText(text string) map[string]string {
	fields := map[string]string{}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		fields["postText"] = "Post text can't be an empty string."
	} else if len(trimmed) > models.MaxPostTextLength {
		fields["postText"] = "Post text exceeds 500 characters limit"
	}
	return fields
}

func ValidateCommentText(text string) map[string]string {
	fields := map[string]string{}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		fields["text"] = "Comment text is required"
	} else if len(trimmed) > models.MaxPostTextLength {
		fields["text"] = "Comment can't have a length more than 500 characters"
	}
	return fields
}

// ValidateUserFields checks the optional and format-bound user fields shared
// by signup and profile updates. Empty values pass for optional fields.
func ValidateUserFields(email, phone, bio, website string) map[string]string {
	fields := map[string]string{}
	if email != "" && !emailPattern.MatchString(email) {
		fields["email"] = "Please fill a valid email address"
	}
	if phone != "" && !phonePattern.MatchString(phone) {
		fields["phoneNumber"] = "Please fill a valid phone number"
	}
	if len(bio) > MaxBioLength {
		fields["bio"] = "Bio exceeds 250 characters length limit."
	}
	if website != "" && !websitePattern.MatchString(website) {
		fields["website"] = "Please fill a valid website link"
	}
	return fields
}
