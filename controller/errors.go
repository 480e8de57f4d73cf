package controller

import "errors"

var (
	ErrParseRequest = errors.New("failed to parse request")

	ErrNoDocument = errors.New("no document uploaded or processed yet, please upload a document first")
	ErrNoSummary  = errors.New("summary not available for the current document, it might have failed during generation")

	ErrEmptyQuestion = errors.New("question cannot be empty")

	ErrUploadDocument    = errors.New("an unexpected error occurred during upload")
	ErrGenerateAnswer    = errors.New("an error occurred while processing your question")
	ErrGenerateChallenge = errors.New("an unexpected error occurred while generating challenge questions")
	ErrEvaluateAnswer    = errors.New("an unexpected error occurred while evaluating the answer")
)
