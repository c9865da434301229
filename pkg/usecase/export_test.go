package usecase

// IsAnswerError is exported for testing
var IsAnswerError = isAnswerError
