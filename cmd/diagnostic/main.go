// File: cmd/diagnostic/main.go
// A connectivity check for the external services: embeddings, chat
// completion, the vector store backend, and TTS. Run it after changing
// credentials to find out which leg is broken before starting the server.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"literarychat/internal/config"
	"literarychat/internal/services"
	"literarychat/internal/services/ai"
	"literarychat/internal/services/tts"
	"literarychat/internal/services/vectorstore"
)

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	aiConfig := ai.DefaultConfig()
	aiConfig.EmbeddingKey = cfg.EmbeddingAPIKey
	aiConfig.EmbeddingBaseURL = cfg.EmbeddingBaseURL
	aiConfig.EmbeddingModel = cfg.EmbeddingModel
	aiConfig.LLMKey = cfg.LLMAPIKey
	aiConfig.LLMBaseURL = cfg.LLMBaseURL
	aiConfig.ChatModel = cfg.ChatModel

	provider, err := ai.NewOpenAIProvider(aiConfig)
	if err != nil {
		log.Fatalf("AI provider configuration invalid: %v", err)
	}

	fmt.Printf("Embedding (%s)... ", cfg.EmbeddingModel)
	vector, err := provider.CreateEmbedding(ctx, "It is a truth universally acknowledged.")
	if err != nil {
		log.Fatalf("FAILED: %v", err)
	}
	fmt.Printf("ok (%d dimensions)\n", len(vector))

	fmt.Printf("Chat completion (%s)... ", cfg.ChatModel)
	reply, err := provider.GetCompletion(ctx, "Reply with the single word: ready")
	if err != nil {
		log.Fatalf("FAILED: %v", err)
	}
	fmt.Printf("ok (%q)\n", reply)

	logger := services.NewLogger("diagnostic")
	fmt.Printf("Vector store (%s)... ", cfg.VectorBackend)
	var store vectorstore.Store
	if cfg.VectorBackend == "pinecone" {
		store, err = vectorstore.NewPineconeStore(cfg.PineconeAPIKey, cfg.PineconeIndexHost, logger)
	} else {
		store, err = vectorstore.NewLocalStore(cfg.VectorStoreDir, logger)
	}
	if err != nil {
		log.Fatalf("FAILED: %v", err)
	}
	locator, err := store.Save(ctx, 0, []string{"diagnostic chunk"}, [][]float32{vector})
	if err != nil {
		log.Fatalf("FAILED (save): %v", err)
	}
	matches, err := store.Query(ctx, locator, vector, 1)
	if err != nil || len(matches) == 0 {
		log.Fatalf("FAILED (query): %v", err)
	}
	fmt.Println("ok")

	if cfg.TTSAPIKey == "" {
		fmt.Println("TTS... skipped (TTS_API_KEY not set)")
		return
	}
	fmt.Printf("TTS (%s)... ", cfg.TTSDefaultVoice)
	ttsConfig := tts.DefaultConfig()
	ttsConfig.APIKey = cfg.TTSAPIKey
	ttsConfig.DefaultVoice = cfg.TTSDefaultVoice
	speech, err := tts.NewGoogleProvider(ctx, ttsConfig)
	if err != nil {
		log.Fatalf("FAILED: %v", err)
	}
	voice := tts.ResolveVoice(cfg.TTSDefaultVoice, cfg.TTSDefaultVoice)
	audio, err := speech.Synthesize(ctx, "Diagnostic check.", voice)
	if err != nil {
		log.Fatalf("FAILED: %v", err)
	}
	fmt.Printf("ok (%d bytes of audio)\n", len(audio))
}
