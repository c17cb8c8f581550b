package workspace

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is the last user-facing outcome message of a workspace operation.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

const (
	MsgDraftSaved       = "Brouillon sauvegardé avec succès !"
	MsgDraftSaveFailed  = "Une erreur est survenue lors de la sauvegarde du brouillon."
	MsgDraftLoaded      = "Brouillon chargé avec succès !"
	MsgDraftLoadFailed  = "Une erreur est survenue lors du chargement du brouillon."
	MsgSubmitted        = "Formulaire soumis avec succès !"
	MsgSubmissionFailed = "Une erreur est survenue lors de la soumission du formulaire. Veuillez réessayer."
)

func success(msg string) *Notice { return &Notice{Level: NoticeSuccess, Message: msg} }
func failure(msg string) *Notice { return &Notice{Level: NoticeError, Message: msg} }
