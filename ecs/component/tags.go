package component

type LeadTag struct{}

var LeadTagComponent = NewComponent[LeadTag]()

type CompanionTag struct{}

var CompanionTagComponent = NewComponent[CompanionTag]()

type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]()
