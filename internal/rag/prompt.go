package rag

import (
	"github.com/tmc/langchaingo/prompts"
)

// FallbackAnswer is the literal response the model is instructed to
// emit when the context does not contain the answer. With a populated
// index this is a prompt-level contract only; nothing validates that
// the model complied.
const FallbackAnswer = "Não encontrei essa informação nos documentos."

const answerTemplate = `Você é um assistente especializado em responder perguntas com base nos documentos fornecidos.

Instruções:
- Use apenas o contexto abaixo para responder.
- Se a resposta não estiver clara no contexto, diga: "` + FallbackAnswer + `"
- Seja direto e conciso (máximo 3 frases).
- Se possível, destaque palavras-chave importantes da resposta.
- Não invente informações que não estejam no contexto.

Contexto: {{.context}}

Pergunta: {{.question}}

Resposta:
`

var answerPrompt = prompts.NewPromptTemplate(answerTemplate, []string{"context", "question"})

func renderPrompt(contextBlock, question string) (string, error) {
	return answerPrompt.Format(map[string]any{
		"context":  contextBlock,
		"question": question,
	})
}
