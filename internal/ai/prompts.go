package ai

import "fmt"

const detectionPromptTemplate = `You are a data privacy analyst. Scan the document below for personally identifiable information.

Look for these categories and use these exact labels as keys:
AADHAR, PAN, CREDIT_CARD, PHONE, EMAIL, PASSPORT, PERSON, DATE_TIME, BLOOD_GROUP, VOTER_ID, LICENSE, BANK_ACCOUNT

Document Content:
"""
%s
"""

Return valid JSON only, no markdown: a single object mapping each detected label to the list of exact strings found, e.g.
{"EMAIL":["jane@example.com"],"PHONE":["9876543210"]}
Omit labels with no findings. If nothing is found, return {}.`

// buildDetectionPrompt renders the shared prompt both providers use.
func buildDetectionPrompt(text string) string {
	return fmt.Sprintf(detectionPromptTemplate, text)
}
