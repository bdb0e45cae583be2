package redis

const (
	// KeyPrefixLink is the prefix for link documents
	KeyPrefixLink = "implink:link:"
	// KeyAllLinks is the set of all link ids
	KeyAllLinks = "implink:links:all"

	// KeyPrefixReminder is the prefix for reminder documents
	KeyPrefixReminder = "implink:reminder:"
	// KeyAllReminders is the set of all reminder ids
	KeyAllReminders = "implink:reminders:all"

	// KeyPrefixCategory is the prefix for category documents
	KeyPrefixCategory = "implink:category:"
	// KeyAllCategories is the set of all category ids
	KeyAllCategories = "implink:categories:all"
	// KeyCategoryNames maps trimmed category name -> id, enforcing
	// name uniqueness for idempotent creates
	KeyCategoryNames = "implink:categories:names"
)

// LinkKey returns the Redis key for a link document
func LinkKey(id string) string {
	return KeyPrefixLink + id
}

// ReminderKey returns the Redis key for a reminder document
func ReminderKey(id string) string {
	return KeyPrefixReminder + id
}

// CategoryKey returns the Redis key for a category document
func CategoryKey(id string) string {
	return KeyPrefixCategory + id
}
