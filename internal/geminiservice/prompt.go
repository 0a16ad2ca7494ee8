package geminiservice

// CoachPersona is sent as the system instruction with every chat request.
const CoachPersona = "You are a friendly, motivational, and highly knowledgeable AI Fitness Coach. " +
	"Answer questions concisely and focus on fitness, nutrition, and wellness topics based on the user's current profile. " +
	"Do not discuss generating code."

// Replies shown to the user in place of a model answer.
const (
	FallbackUnavailable = "I'm sorry, I'm having trouble connecting to my knowledge base right now."
	FallbackMalformed   = "Sorry, I encountered an error fetching the response."
)
