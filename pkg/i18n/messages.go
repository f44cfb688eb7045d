package i18n

// Message keys shared by services and handlers.
const (
	MsgRequestSent          = "request sent"
	MsgNewRequestTitle      = "New purchase request"
	MsgNewRequestBody       = "%s wants to buy %s %s of %s"
	MsgRequestAcceptedTitle = "Request accepted"
	MsgRequestAcceptedBody  = "%s accepted your request for %s"
	MsgRequestRejectedTitle = "Request rejected"
	MsgRequestRejectedBody  = "%s declined your request for %s"
	MsgRequestDoneTitle     = "Request completed"
	MsgRequestDoneBody      = "The request for %s was marked as completed by %s"
	MsgFavoriteAdded        = "added to favorites"
	MsgFavoriteExists       = "already in favorites"
	MsgFavoriteRemoved      = "removed from favorites"
	MsgLoggedOut            = "logged out"
	MsgProductCreated       = "product created"
	MsgNotificationsRead    = "notifications marked as read"
	MsgSomeone              = "Someone"
)

var frenchMessages = map[string]string{
	// error codes
	"validation failed":       "Données invalides",
	"authentication required": "Authentification requise",
	"access denied":           "Accès non autorisé",
	"resource not found":      "Ressource introuvable",
	"conflict detected":       "Conflit détecté",
	"idempotency key reused":  "Clé d'idempotence déjà utilisée",
	"rate limit exceeded":     "Trop de tentatives, réessayez plus tard",
	"internal server error":   "Erreur interne",
	"dependency unavailable":  "Service temporairement indisponible",

	// domain errors
	"product not found":                                      "Produit introuvable",
	"purchase request not found":                             "Demande introuvable",
	"notification not found":                                 "Notification introuvable",
	"user not found":                                         "Utilisateur introuvable",
	"category not found":                                     "Catégorie introuvable",
	"quantity must be greater than zero":                     "La quantité doit être supérieure à zéro",
	"only merchants can create purchase requests":            "Seuls les commerçants peuvent envoyer des demandes",
	"only suppliers can create products":                     "Seuls les fournisseurs peuvent ajouter des produits",
	"only the supplier can accept or reject":                 "Seul le fournisseur peut accepter ou refuser",
	"not a party to this purchase request":                   "Vous n'êtes pas concerné par cette demande",
	"invalid status transition":                              "Changement de statut impossible",
	"purchase request was updated concurrently":              "La demande a été modifiée entre-temps",
	"phone number already registered":                        "Ce numéro de téléphone est déjà utilisé",
	"invalid phone or password":                              "Numéro de téléphone ou mot de passe incorrect",
	"invalid role":                                           "Rôle invalide",
	"invalid request body":                                   "Corps de requête invalide",
	"invalid status":                                         "Statut invalide",
	"invalid id":                                             "Identifiant invalide",
	"missing bearer token":                                   "Jeton d'authentification manquant",
	"invalid token":                                          "Jeton invalide",
	"token expired":                                          "Jeton expiré, veuillez vous reconnecter",
	"session revoked":                                        "Session expirée",
	"too many login attempts":                                "Trop de tentatives de connexion",
	"too many registration attempts":                         "Trop de tentatives d'inscription",
	"idempotency key reused with different payload":          "Clé d'idempotence réutilisée avec un contenu différent",
	"request with this idempotency key is still in progress": "Une requête avec cette clé d'idempotence est déjà en cours",
	"request body is required":                               "Le corps de la requête est obligatoire",
	"request body too large":                                 "Corps de requête trop volumineux",
	"request body must contain a single JSON object":         "Le corps de la requête doit contenir un seul objet JSON",
	"malformed JSON":                                         "JSON mal formé",

	// success and notification text
	MsgRequestSent:          "Demande envoyée",
	MsgNewRequestTitle:      "Nouvelle demande d'achat",
	MsgNewRequestBody:       "%s souhaite acheter %s %s de %s",
	MsgRequestAcceptedTitle: "Demande acceptée",
	MsgRequestAcceptedBody:  "%s a accepté votre demande de %s",
	MsgRequestRejectedTitle: "Demande refusée",
	MsgRequestRejectedBody:  "%s a refusé votre demande de %s",
	MsgRequestDoneTitle:     "Demande terminée",
	MsgRequestDoneBody:      "La demande de %s a été marquée comme terminée par %s",
	MsgFavoriteAdded:        "Ajouté aux favoris",
	MsgFavoriteExists:       "Déjà en favoris",
	MsgFavoriteRemoved:      "Retiré des favoris",
	MsgLoggedOut:            "Déconnecté",
	MsgProductCreated:       "Produit ajouté",
	MsgNotificationsRead:    "Notifications marquées comme lues",
	MsgSomeone:              "Quelqu'un",
}
