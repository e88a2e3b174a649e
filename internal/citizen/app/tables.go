package app

// 记录库的表名与常用字段名。两个后端（HTTP 记录库 / mongodb）共用同一套命名。
const (
	tableCitizens      = "citizens"
	tableStructures    = "buildings"
	tableParcels       = "lands"
	tableContracts     = "contracts"
	tableLoans         = "loans"
	tableGuilds        = "guilds"
	tableRelationships = "relationships"
	tableProblems      = "problems"
	tableMessages      = "messages"
	tableBulletins     = "bulletins"
	tableSchemes       = "schemes"
	tableActivities    = "activities"
)

const (
	fieldUsername  = "username"
	fieldOwner     = "owner"
	fieldOccupant  = "occupant"
	fieldCategory  = "category"
	fieldParcelID  = "parcel_id"
	fieldStatus    = "status"
	fieldCitizen   = "citizen"
	fieldGuildID   = "guild_id"
	fieldBuyer     = "buyer"
	fieldSeller    = "seller"
	fieldLender    = "lender"
	fieldBorrower  = "borrower"
	fieldCitizenA  = "citizen_a"
	fieldCitizenB  = "citizen_b"
	fieldSender    = "sender"
	fieldReceiver  = "receiver"
	fieldExecutor  = "executed_by"
	fieldTarget    = "target_citizen"
	fieldCreatedAt = "created_at"
	fieldEndAt     = "end_at"
	fieldStartAt   = "start_at"
	fieldPublished = "published_at"
	fieldExecuted  = "executed_at"
	fieldExpires   = "expires_at"
)
