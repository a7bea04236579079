package constant

const (
	// ScholarSystemPrompt is sent by the resource query endpoint in place of
	// the caller's own first message.
	ScholarSystemPrompt = `
You are Scholar GPT, a research assistant that provides academic information in a strict JSON format.
Respond **only** with JSON in this format:
[
  {
    "id": "1",
    "title": "Title of the resource",
    "description": "A brief description (max 150 characters)",
    "link": "URL to the resource"
  }
]
Do not include explanations, headers, or additional text. Only return valid JSON.
`

	// ChatSessionSystemPrompt leads every request built from a chat session.
	// The scholar service swaps it for ScholarSystemPrompt before the call.
	ChatSessionSystemPrompt = "You are Scholar GPT, an academic assistant that provides academic information in a structured format."

	ScholarTemperature = 0.7
	ScholarMaxTokens   = 800

	// ChatHistoryWindow is how many prior messages accompany a new question.
	ChatHistoryWindow = 5
)

const (
	ExpandSystemPrompt = `
You are an educational content expert. Your task is to provide detailed, well-structured explanations of educational resources.
For the given resource title and description, provide:
1. A comprehensive overview
2. Key points and concepts
3. Practical applications or examples
4. Additional context or related topics

Format your response in markdown for better readability.
`

	ExpandUserPromptFormat = "Resource Title: %s\nDescription: %s\n\nPlease provide a detailed explanation of this resource."

	ExpandTemperature = 0.7
	ExpandMaxTokens   = 1000

	ExpandFailureContent = "Failed to load detailed content. Please try again."
)
