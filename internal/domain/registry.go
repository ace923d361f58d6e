package domain

// AllModels returns every table the service owns, in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&Admin{},
		&AccountDetails{},
		&Submission{},
		&Session{},
	}
}
