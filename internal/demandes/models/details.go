package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"cdp/internal/forms"
	dErrors "cdp/pkg/domain-errors"
)

// Details is the form-specific payload of a demande, tagged by form type.
// Exactly one variant is set, matching Type.
type Details struct {
	Type         string
	Autorisation *AutorisationDetails
}

// AutorisationDetails holds the answers of the autorisation form.
type AutorisationDetails struct {
	NomRaisonSociale             string `json:"nomRaisonSociale"`
	SecteurActivite              string `json:"secteurActivite"`
	RC                           string `json:"rc"`
	NINEA                        string `json:"ninea"`
	Adresse                      string `json:"adresse"`
	CodePostal                   string `json:"codePostal"`
	Ville                        string `json:"ville"`
	Telephone                    string `json:"telephone"`
	Email                        string `json:"email"`
	DenominationTraitement       string `json:"denominationTraitement"`
	FinaliteTraitement           string `json:"finaliteTraitement"`
	TexteJuridique               string `json:"texteJuridique"`
	PrincipesRespectes           string `json:"principesRespectes"`
	CategoriesPersonnes          string `json:"categoriesPersonnes"`
	AutresCategories             string `json:"autresCategories"`
	TypeTraitement               string `json:"typeTraitement"`
	DescriptionTraitementManuel  string `json:"descriptionTraitementManuel"`
	CaracteristiquesSysteme      string `json:"caracteristiquesSysteme"`
	InterconnexionsFichiers      string `json:"interconnexionsFichiers"`
	FichiersConcernes            string `json:"fichiersConcernes"`
	TransfertDonnees             string `json:"transfertDonnees"`
	PaysDestination              string `json:"paysDestination"`
	MesuresSecurite              string `json:"mesuresSecurite"`
	SousTraitance                string `json:"sousTraitance"`
	PersonnesConcerneesInformees string `json:"personnesConcerneesInformees"`
	ModalitesInformation         string `json:"modalitesInformation"`
	DroitAcces                   string `json:"droitAcces"`
}

// DetailsFromAnswers builds the typed variant for formType.
func DetailsFromAnswers(formType string, answers forms.Answers) (Details, error) {
	switch formType {
	case forms.TypeAutorisation:
		var a AutorisationDetails
		if err := decodeStrict(answers, &a); err != nil {
			return Details{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "answers do not match the autorisation form")
		}
		return Details{Type: formType, Autorisation: &a}, nil
	default:
		return Details{}, dErrors.New(dErrors.CodeInvalidInput, "no details layout for form type "+formType)
	}
}

// Answers flattens the variant back into field answers.
func (d Details) Answers() forms.Answers {
	var v any
	switch {
	case d.Autorisation != nil:
		v = d.Autorisation
	default:
		return forms.Answers{}
	}
	raw, _ := json.Marshal(v)
	var out forms.Answers
	_ = json.Unmarshal(raw, &out)
	return out
}

// CompanyName is the applicant name carried by the variant.
func (d Details) CompanyName() string {
	if d.Autorisation != nil {
		return d.Autorisation.NomRaisonSociale
	}
	return ""
}

func (d Details) MarshalJSON() ([]byte, error) {
	switch {
	case d.Autorisation != nil:
		return json.Marshal(d.Autorisation)
	default:
		return []byte("{}"), nil
	}
}

// UnmarshalDetails decodes a stored payload for formType.
func UnmarshalDetails(formType string, raw []byte) (Details, error) {
	var answers forms.Answers
	if err := json.Unmarshal(raw, &answers); err != nil {
		return Details{}, fmt.Errorf("decode details: %w", err)
	}
	return DetailsFromAnswers(formType, answers)
}

func decodeStrict(answers forms.Answers, dst any) error {
	raw, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
