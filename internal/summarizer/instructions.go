package summarizer

import "fmt"

const taskInstructions = `You are analyzing a personal journal entry.

ENTRY:
%s

TASKS:
1. Write a 2-3 sentence summary extracting key themes, events, and emotional states.
2. Generate 2-4 clarifying questions to help build a chronological timeline. Focus on:
   - Unclear time references ("yesterday", "that thing in 2019")
   - Vague pronouns or references
   - Conflicting information
   - Events mentioned without context

Respond ONLY with valid JSON in this exact format:
{
  "summary": "your 2-3 sentence summary here",
  "questions": [
    "Question 1?",
    "Question 2?"
  ]
}`

// ComposePrompt embeds the entry content in the fixed task instructions.
func ComposePrompt(content string) string {
	return fmt.Sprintf(taskInstructions, content)
}
