// Package redis implements the game session store on Redis.
package redis

import (
	"strconv"
)

const (
	keyScenariosAll  = "scenarios:all"
	keyScenariosPool = "scenarios:pool"
	keyScenarioFree  = "scenarios:free"
	keyPlayersByName = "players:by-name"
	keyPlayerSeq     = "seq:player"
	keyGameSeq       = "seq:game"

	fieldText     = "text"
	fieldFree     = "free"
	fieldName     = "name"
	fieldID       = "id"
	fieldWinnerID = "winner_id"
	fieldPlayerID = "player_id"
)

func scenarioKey(id int64) string {
	return "scenario:" + strconv.FormatInt(id, 10)
}

func playerKey(id int64) string {
	return "player:" + strconv.FormatInt(id, 10)
}

func gameKey(id int64) string {
	return "game:" + strconv.FormatInt(id, 10)
}

func sessionKey(gameID int64) string {
	return "session:" + strconv.FormatInt(gameID, 10)
}

func sessionOfferedKey(gameID int64) string {
	return sessionKey(gameID) + ":offered"
}

func sessionMarkedKey(gameID int64) string {
	return sessionKey(gameID) + ":marked"
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
