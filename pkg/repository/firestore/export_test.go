package firestore

var (
	ToAssessmentDocument   = toAssessmentDocument
	FromAssessmentDocument = fromAssessmentDocument
)
