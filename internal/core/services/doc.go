// Package services implements the driving port interfaces.
// Services contain the core business logic - term planning, research
// orchestration, knowledge retrieval, chat, script generation and
// market analysis - and orchestrate calls to driven ports (adapters).
//
// Services degrade rather than fail where the behaviour is recoverable:
// a missing LLM narrows a research run to the raw topic, a failed brief
// summary falls back to canned text. Only missing hard requirements
// (vector index for script generation) surface as errors.
package services
