package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/oclaw/coopmatch/internal/config"
	"github.com/oclaw/coopmatch/internal/filter"
	"github.com/oclaw/coopmatch/internal/lexicon"
	"github.com/oclaw/coopmatch/internal/llm"
	"github.com/oclaw/coopmatch/internal/logging"
	"github.com/oclaw/coopmatch/internal/matchcache"
	"github.com/oclaw/coopmatch/internal/matcher"
	"github.com/oclaw/coopmatch/internal/notifier"
	"github.com/oclaw/coopmatch/internal/requirement"
	"github.com/oclaw/coopmatch/internal/resumeindex"
	"github.com/oclaw/coopmatch/internal/store"
)

// cliApp bundles the collaborators most subcommands need, built once from
// the resolved configuration. llmClient and notify may be nil.
type cliApp struct {
	cfg       *config.Config
	logger    *zap.Logger
	store     *store.Store
	matcher   *matcher.Matcher
	cache     *matchcache.Cache
	filterer  *filter.Engine
	notify    *notifier.Notifier
	llmClient llm.Client
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.ConfigFileUsed())
	if err != nil {
		return nil, err
	}

	// Persistent flags are bound onto the global viper instance in
	// root.go's init(); config.Load works off its own viper.Viper so it
	// can be unit tested without the CLI wiring. Apply the flag-bound
	// overrides here, after defaults/file/env, so flags win last.
	if viper.IsSet("debug") {
		cfg.Debug = viper.GetBool("debug")
	}
	if viper.IsSet("json") {
		cfg.JSON = viper.GetBool("json")
	}
	if v := viper.GetString("db_path"); v != "" {
		cfg.DBPath = v
	}
	if v := viper.GetString("resume_path"); v != "" {
		cfg.ResumePath = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config after flag overrides: %w", err)
	}
	return cfg, nil
}

func buildApp() (*cliApp, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cfg.JSON, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	lex, err := loadLexicon(cfg.TechLexiconPath)
	if err != nil {
		return nil, fmt.Errorf("loading lexicon: %w", err)
	}

	skipPhrases, skipHash, err := loadSkipList(cfg.NoiseSkipPhrasesPath)
	if err != nil {
		return nil, fmt.Errorf("loading skip list: %w", err)
	}

	var extractor *requirement.Extractor
	if cfg.NoiseSkipPhrasesPath != "" {
		extractor = requirement.NewWithSkipList(lex.Contains, skipPhrases)
	} else {
		extractor = requirement.New(lex.Contains, nil)
	}

	resumeText, err := resumeindex.ExtractText(cfg.ResumePath)
	if err != nil {
		return nil, fmt.Errorf("reading résumé %q: %w", cfg.ResumePath, err)
	}

	cachePath := cfg.ResumePath + ".index.gob"
	idx, err := resumeindex.LoadOrBuild(cachePath, resumeText)
	if err != nil {
		return nil, fmt.Errorf("building résumé index: %w", err)
	}

	engineVersion := matcher.EngineVersion(cfg.Weights, cfg.SimilarityThreshold, lex.Hash(), skipHash)
	m := matcher.New(idx, resumeText, lex, extractor, cfg.Weights, cfg.SimilarityThreshold, cfg.TopK, engineVersion)
	cache := matchcache.New(st, engineVersion)
	filterer := filter.New(cfg)

	notify, err := notifier.New(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		return nil, fmt.Errorf("building notifier: %w", err)
	}
	if !cfg.Telegram.Enabled {
		notify = nil
	}

	llmClient, err := buildLLMClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("building llm client: %w", err)
	}

	return &cliApp{
		cfg: cfg, logger: logger, store: st, matcher: m, cache: cache,
		filterer: filterer, notify: notify, llmClient: llmClient,
	}, nil
}

func buildLLMClient(cfg *config.Config) (llm.Client, error) {
	if cfg.LLM.APIKey == "" {
		return nil, nil
	}
	switch cfg.LLM.Provider {
	case "gemini":
		return llm.NewGeminiClient(context.Background(), cfg.LLM.APIKey, cfg.LLM.Model)
	case "groq", "":
		return llm.NewGroqClient(cfg.LLM.APIKey, cfg.LLM.Model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}

func (a *cliApp) Close() {
	_ = a.logger.Sync()
	_ = a.store.Close()
}

func loadLexicon(path string) (*lexicon.Lexicon, error) {
	if path == "" {
		return lexicon.LoadDefault()
	}
	return lexicon.LoadFile(path)
}

func loadSkipList(path string) ([]string, string, error) {
	if path == "" {
		return nil, requirement.DefaultSkipListHash(), nil
	}
	return requirement.LoadSkipPhrases(path)
}
