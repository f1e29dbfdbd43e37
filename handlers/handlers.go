package handlers

import (
	"talkdata/agent"
	"talkdata/ai"
	"talkdata/engine"
	"talkdata/store"
	"talkdata/suggest"
)

// @title           TalkData API
// @version         1.0
// @description     TalkData API - Ask questions about tabular datasets in natural language and get answers, SQL and charts back
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:9090
// @BasePath  /

// @schemes   http https

type Handlers struct {
	store      *store.Store
	aiService  *ai.Service
	engine     *engine.Service
	agent      *agent.Agent
	suggestSvc *suggest.Service
}

func New(store *store.Store, aiService *ai.Service, engine *engine.Service, agent *agent.Agent, suggestSvc *suggest.Service) *Handlers {
	return &Handlers{
		store:      store,
		aiService:  aiService,
		engine:     engine,
		agent:      agent,
		suggestSvc: suggestSvc,
	}
}
