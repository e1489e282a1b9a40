package server

// @title holocron API
// @version 1.0
// @description Aggregates starship, crew and residency answers from a SWAPI-shaped catalog.
// @description
// @description Every field of the composite is always present. Fields whose
// @description pipeline failed carry their default and are marked "defaulted"
// @description in the provenance object.
//
// @contact.name holocron
// @contact.url https://github.com/agentstation/holocron
//
// @license.name MIT
//
// @host localhost:8080
// @BasePath /api/v1
