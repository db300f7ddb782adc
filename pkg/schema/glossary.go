package schema

// columnGlossary carries hand-written business annotations for known columns.
// Columns absent from this map get no description; the language model only
// sees what an admin has documented.
var columnGlossary = map[string]map[string]string{
	"kd_users": {
		"id":                   "Unique user identifier (UUID)",
		"username":             "User display name",
		"email":                "User email address",
		"created_at":           "User registration timestamp",
		"birth_date":           "User birth date for age calculation",
		"gender":               "User gender (Male, Female, Other)",
		"registration_country": "Country where user registered",
		"element_number":       "KENAL personality element (1-9)",
		"user_type":            "Account type (premium, basic, etc.)",
		"is_active":            "Whether user account is active",
		"join_by_invitation":   "True if user joined via invitation",
	},
	"kd_identity": {
		"user_id":            "References kd_users.id - users who completed assessment",
		"identity_type":      "KENAL personality type/category",
		"personality_traits": "JSON with detailed personality data",
		"created_at":         "When identity assessment was completed",
	},
	"kd_conversations": {
		"id":              "Unique conversation identifier",
		"participant_1":   "First user in conversation",
		"participant_2":   "Second user in conversation",
		"created_at":      "When conversation started",
		"last_message_at": "Timestamp of most recent message",
	},
	"kd_messages": {
		"id":              "Unique message identifier",
		"conversation_id": "References kd_conversations.id",
		"sender_id":       "References kd_users.id - who sent the message",
		"content":         "Message text content",
		"created_at":      "When message was sent",
	},
}

// describeColumn returns the glossary annotation for a column, or "".
func describeColumn(table, column string) string {
	if cols, ok := columnGlossary[table]; ok {
		return cols[column]
	}
	return ""
}
