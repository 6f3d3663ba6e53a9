/*
Package behave lets independently written behaviors attach to a shared subject and
contribute values to named, strategy-resolved properties of that subject.

Core Concepts:

  - Subject: An entity definition (a block, a fluid) that hosts behaviors and aspects.
  - Behavior: A unit of logic attached to exactly one subject.
  - Aspect: A named value slot resolved by one Strategy over its contributors.
  - Contributor: A function supplying one candidate value to an aspect.
  - BehaviorSystem: The registry that assigns dense IDs to behavior types and bakes
    every subject's behaviors into an array indexed by those IDs.

Strategies:

  - Exclusive: a single contributor decides the value.
  - Chaining: contributors fold over the value in registration order.
  - ANDing / ORing: boolean AND / OR without short-circuiting.
  - Average, Minimum, Maximum: numeric combination of contributions.
  - Masking: bitwise AND of flag contributions.
  - Mix: channel-wise color mean where Neutral wins outright.

Basic Usage:

	// Subjects own their aspects
	solid := behave.NewAspect[behave.ANDing[Ctx], bool, Ctx]("solid", block)

	// Behaviors contribute while they are set up
	solid.ContributeConstant(false)

	// Register behaviors, then bake once
	sys := behave.FactoryNewBehaviorSystem[*Block, BlockBehavior](registry, bus)
	sys.RegisterAll(block)
	count, err := sys.Bake()

	// Resolve values for the rest of the program
	isSolid := solid.GetValue(true, ctx)

Registration and baking happen on one goroutine. Contributor limits, double bakes and
late registrations are reported as configuration errors when they happen, never when a
value is read. After Bake, aspects and baked arrays are read-only and may be shared.
*/
package behave
