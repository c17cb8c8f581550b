package forms

import (
	dErrors "cdp/pkg/domain-errors"
)

// Form types offered to applicants.
const (
	TypeAvis                  = "avis"
	TypeAutorisation          = "autorisation"
	TypeDeclarationNormale    = "declaration-normale"
	TypeVideoSurveillance     = "video-surveillance"
	TypeCollecteWeb           = "collecte-web"
	TypeRechercheMedicale     = "recherche-medicale"
	TypeDeclarationSimplifiee = "declaration-simplifiee"
)

// Entry describes one form type in the catalog.
type Entry struct {
	Type        string `json:"type"`
	Titre       string `json:"titre"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

var catalogEntries = []Entry{
	{Type: TypeAvis, Titre: "Formulaire de demande d'avis", Description: "Demande d'avis sur un projet de traitement de données personnelles"},
	{Type: TypeAutorisation, Titre: "Formulaire de demande d'autorisation", Description: "Demande d'autorisation pour un traitement de données personnelles"},
	{Type: TypeDeclarationNormale, Titre: "Formulaire de déclaration normale", Description: "Déclaration standard de traitement de données personnelles"},
	{Type: TypeVideoSurveillance, Titre: "Formulaire de déclaration de système de vidéosurveillance", Description: "Déclaration d'un système de vidéosurveillance"},
	{Type: TypeCollecteWeb, Titre: "Formulaire de déclaration de collecte de données personnelles sur un site internet", Description: "Déclaration de collecte de données via un site web"},
	{Type: TypeRechercheMedicale, Titre: "Formulaire sur la recherche dans le domaine médical", Description: "Déclaration de traitement de données pour la recherche médicale"},
	{Type: TypeDeclarationSimplifiee, Titre: "Formulaire de déclaration simplifiée", Description: "Déclaration simplifiée de traitement de données personnelles"},
}

// Catalog lists the known form types; a type is available once it has a definition.
type Catalog struct {
	defs map[string]*Definition
}

func NewCatalog(defs map[string]*Definition) *Catalog {
	return &Catalog{defs: defs}
}

// NewBuiltinCatalog builds a catalog from the embedded definitions.
func NewBuiltinCatalog() (*Catalog, error) {
	defs, err := LoadBuiltin()
	if err != nil {
		return nil, err
	}
	return NewCatalog(defs), nil
}

// Entries returns every form type in display order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(catalogEntries))
	for i, e := range catalogEntries {
		_, e.Available = c.defs[e.Type]
		out[i] = e
	}
	return out
}

// Known reports whether formType is part of the catalog.
func (c *Catalog) Known(formType string) bool {
	for _, e := range catalogEntries {
		if e.Type == formType {
			return true
		}
	}
	return false
}

// Definition returns the definition for an available form type.
func (c *Catalog) Definition(formType string) (*Definition, error) {
	if !c.Known(formType) {
		return nil, dErrors.New(dErrors.CodeNotFound, "unknown form type")
	}
	def, ok := c.defs[formType]
	if !ok {
		return nil, dErrors.New(dErrors.CodeInvalidRequest, "form type not available yet")
	}
	return def, nil
}
