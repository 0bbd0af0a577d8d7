package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type DrifterTag struct{}

var DrifterTagComponent = NewComponent[DrifterTag]()
