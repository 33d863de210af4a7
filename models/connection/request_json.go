package connection

type ReqAttack struct {
	GameUuid string `json:"game_uuid"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
}

type ReqFetchBoards struct {
	GameUuid string `json:"game_uuid"`
}
