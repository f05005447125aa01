package repository

import "settlement_service/internal/domain/entities"

func webhookEventKey(provider entities.Provider, eventID string) string {
	return string(provider) + "#" + eventID
}

func orderGuardKey(orderID string) string {
	return "ORDER#" + orderID
}

func sessionGuardKey(provider entities.Provider, sessionID string) string {
	return "SESSION#" + string(provider) + "#" + sessionID
}

func confirmationGuardKey(provider entities.Provider, confirmationID string) string {
	return "CONFIRMATION#" + string(provider) + "#" + confirmationID
}
